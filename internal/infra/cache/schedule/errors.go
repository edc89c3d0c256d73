package schedule

import "errors"

var (
	// ErrCacheUnavailable возвращается при ошибке обращения к Redis
	ErrCacheUnavailable = errors.New("schedule.cache: cache unavailable")

	// ErrDecode возвращается, когда запись кэша не удалось разобрать
	ErrDecode = errors.New("schedule.cache: failed to decode entry")
)
