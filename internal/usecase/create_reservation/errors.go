package create_reservation

import (
	"errors"
	"strings"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrSpaceNotFound возвращается, когда помещение не найдено
	ErrSpaceNotFound = errors.New("create_reservation: space not found")

	// ErrReservationRejected возвращается, когда кандидат нарушает расписание или пересекается с бронированиями
	ErrReservationRejected = errors.New("create_reservation: reservation rejected")

	// ErrUpstreamUnavailable возвращается, когда хранилище недоступно
	ErrUpstreamUnavailable = errors.New("create_reservation: upstream unavailable")
)

// RejectedError отказ с перечнем нарушений
// errors.Is(err, ErrReservationRejected) == true
type RejectedError struct {
	Violations []domain.Violation
}

func (e *RejectedError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return ErrReservationRejected.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *RejectedError) Unwrap() error {
	return ErrReservationRejected
}
