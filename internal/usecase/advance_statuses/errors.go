package advance_statuses

import "errors"

var (
	// ErrUpstreamUnavailable возвращается, когда не удалось получить бронирования
	ErrUpstreamUnavailable = errors.New("advance_statuses: upstream unavailable")
)
