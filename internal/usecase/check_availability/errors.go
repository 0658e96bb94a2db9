package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrSpaceNotFound возвращается, когда помещение не найдено
	ErrSpaceNotFound = errors.New("check_availability: space not found")

	// ErrUpstreamUnavailable возвращается, когда хранилище недоступно
	ErrUpstreamUnavailable = errors.New("check_availability: upstream unavailable")
)
