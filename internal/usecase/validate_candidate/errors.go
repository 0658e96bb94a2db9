package validate_candidate

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_candidate: invalid input data")

	// ErrSpaceNotFound возвращается, когда помещение не найдено
	ErrSpaceNotFound = errors.New("validate_candidate: space not found")

	// ErrUpstreamUnavailable возвращается, когда хранилище недоступно
	ErrUpstreamUnavailable = errors.New("validate_candidate: upstream unavailable")
)
