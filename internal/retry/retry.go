package retry

import (
	"context"
	"errors"
	"time"
)

// Policy — сколько раз пробуем и сколько ждём между попытками.
// Delay фиксированный; Backoff > 1 включает экспоненциальный рост.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     float64
	// RetryIf решает, есть ли смысл повторять. nil = повторять всё,
	// кроме отменённого контекста.
	RetryIf func(error) bool
}

func DefaultRetryIf(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Do гоняет fn до успеха или исчерпания попыток, возвращает последнюю ошибку.
func Do[T any](ctx context.Context, p Policy, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	retryIf := p.RetryIf
	if retryIf == nil {
		retryIf = DefaultRetryIf
	}

	delay := p.Delay

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retryIf(err) {
			return zero, err
		}
		if attempt == p.MaxAttempts {
			break
		}

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}

		if p.Backoff > 1 {
			delay = time.Duration(float64(delay) * p.Backoff)
		}
	}

	return zero, lastErr
}
