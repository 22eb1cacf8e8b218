package ports

import "errors"

// Классификация ошибок внешнего AI-сервиса. Адаптер решает, что это было,
// домен — что с этим делать.
var (
	// ErrAuth: ключ невалиден или отсутствует. Не ретраится.
	ErrAuth = errors.New("ai service: invalid or missing credentials")
	// ErrUnavailable: транспортная ошибка (сеть, connection refused).
	ErrUnavailable = errors.New("ai service: unavailable")
)
