package advance_statuses

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/lifecycle"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// ListForLifecycle бронирования в статусах, которые двигаются по времени
	ListForLifecycle(ctx context.Context, now time.Time) ([]*domain.Reservation, error)
	// ApplyStatusTransition идемпотентно переводит статус from -> to
	ApplyStatusTransition(ctx context.Context, id int64, from, to domain.ReservationStatus) error
}

// Guard защита от повторной выдачи переходов
type Guard interface {
	Tick(reservations []*domain.Reservation, now time.Time) []lifecycle.Transition
	Forget(t lifecycle.Transition)
	Reconcile(snapshot []*domain.Reservation) int
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// Metrics метрики жизненного цикла
type Metrics interface {
	RecordTransition(toStatus string, applied bool)
	ObserveTick(duration time.Duration)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
