package spaces

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда помещение не найдено
	ErrSpaceNotFound = errors.New("spaces: space not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("spaces: invalid input data")

	// ErrUpstreamUnavailable возвращается при ошибках хранилища
	ErrUpstreamUnavailable = errors.New("spaces: upstream unavailable")
)
