package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrSpaceNotFound возвращается, когда помещение не найдено
	ErrSpaceNotFound = errors.New("reservations: space not found")

	// ErrCannotConfirm возвращается, когда бронирование не ждёт подтверждения
	ErrCannotConfirm = errors.New("reservations: reservation cannot be confirmed")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("reservations: reservation cannot be cancelled")

	// ErrConflict возвращается, когда подтверждение пересекается с уже занятым временем
	ErrConflict = errors.New("reservations: overlaps with occupying reservations")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrUpstreamUnavailable возвращается при ошибках хранилища
	ErrUpstreamUnavailable = errors.New("reservations: upstream unavailable")
)
