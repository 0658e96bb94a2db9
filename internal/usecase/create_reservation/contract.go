package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// SpaceRepository интерфейс репозитория помещений
type SpaceRepository interface {
	// GetByID внутри транзакции блокирует строку помещения (FOR UPDATE)
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	ListOccupying(ctx context.Context, spaceID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// Metrics доменные метрики создания бронирований
type Metrics interface {
	RecordViolation(kind string)
	RecordConflict(pricingType string)
	RecordReservationCreated(pricingType string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
