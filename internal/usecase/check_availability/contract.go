package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// SpaceRepository интерфейс репозитория помещений
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// ListOccupying получает confirmed и active бронирования, пересекающие [from, to)
	ListOccupying(ctx context.Context, spaceID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
