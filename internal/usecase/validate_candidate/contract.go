package validate_candidate

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
	ListOccupying(ctx context.Context, spaceID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// Metrics доменные метрики проверки кандидатов
type Metrics interface {
	RecordViolation(kind string)
	RecordConflict(pricingType string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
