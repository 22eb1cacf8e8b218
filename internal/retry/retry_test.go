package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_SucceedsOnFirstAttempt(t *testing.T) {
	calls := 0

	result, err := Do(context.Background(), Policy{MaxAttempts: 2, Delay: time.Second}, func() (string, error) {
		calls++
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "ok" {
		t.Errorf("expected 'ok', got %s", result)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_SucceedsAfterRetry_WaitsDelay(t *testing.T) {
	calls := 0
	start := time.Now()

	result, err := Do(context.Background(), Policy{MaxAttempts: 2, Delay: 50 * time.Millisecond}, func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("temporary")
		}
		return "second", nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "second" {
		t.Errorf("expected result from second attempt, got %s", result)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected at least the inter-attempt delay, elapsed %s", elapsed)
	}
}

func TestDo_ExhaustsAttempts_ReturnsLastError(t *testing.T) {
	calls := 0
	last := errors.New("fail-2")

	_, err := Do(context.Background(), Policy{MaxAttempts: 2}, func() (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("fail-1")
		}
		return 0, last
	})

	if !errors.Is(err, last) {
		t.Errorf("expected last error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestDo_RetryIfFalse_StopsImmediately(t *testing.T) {
	calls := 0
	fatal := errors.New("auth")

	_, err := Do(context.Background(), Policy{
		MaxAttempts: 3,
		RetryIf:     func(err error) bool { return !errors.Is(err, fatal) },
	}, func() (int, error) {
		calls++
		return 0, fatal
	})

	if !errors.Is(err, fatal) {
		t.Errorf("expected the fatal error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_ContextCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, Policy{MaxAttempts: 2, Delay: time.Second}, func() (int, error) {
		return 0, errors.New("temporary")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDo_ZeroAttemptsCoercedToOne(t *testing.T) {
	calls := 0

	_, err := Do(context.Background(), Policy{}, func() (int, error) {
		calls++
		return 0, errors.New("always")
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}
