package advance_statuses

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/lifecycle"
	"github.com/m04kA/SMC-SpaceBookingService/internal/infra/events"
	reservationRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/reservation"
)

// UseCase один тик жизненного цикла: перечитать бронирования, вычислить
// переходы по времени и сохранить их
type UseCase struct {
	mu              sync.Mutex
	reservationRepo ReservationRepository
	guard           Guard
	publisher       EventPublisher
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// Тики одного экземпляра выполняются последовательно
func NewUseCase(
	reservationRepo ReservationRepository,
	guard Guard,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		guard:           guard,
		publisher:       publisher,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет тик
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	startedAt := time.Now()
	defer func() {
		uc.metrics.ObserveTick(time.Since(startedAt))
	}()

	// 1. Текущее время в календаре сервиса: от него зависят границы дней
	now := uc.timeProvider.Now().In(uc.location)

	// 2. Снимок бронирований из хранилища
	snapshot, err := uc.reservationRepo.ListForLifecycle(ctx, now)
	if err != nil {
		uc.logger.Error("AdvanceStatuses: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrUpstreamUnavailable, err)
	}

	// 3. Снимаем отметки с уже сохранённых переходов
	if dropped := uc.guard.Reconcile(snapshot); dropped > 0 {
		uc.logger.Info("AdvanceStatuses: reconciled %d persisted transitions", dropped)
	}

	// 4. Новые переходы
	transitions := uc.guard.Tick(snapshot, now)

	resp := &Response{
		At:        now,
		Evaluated: len(snapshot),
		Applied:   make([]lifecycle.Transition, 0, len(transitions)),
	}

	// 5. Сохраняем каждый переход отдельно, ошибка одного не мешает остальным
	for _, t := range transitions {
		if err := uc.reservationRepo.ApplyStatusTransition(ctx, t.ReservationID, t.From, t.To); err != nil {
			uc.guard.Forget(t)
			uc.metrics.RecordTransition(string(t.To), false)
			resp.Failed = append(resp.Failed, t)

			if errors.Is(err, reservationRepo.ErrStatusConflict) || errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("AdvanceStatuses: reservation id=%d changed concurrently: %v", t.ReservationID, err)
			} else {
				uc.logger.Error("AdvanceStatuses: failed to apply %s -> %s for id=%d: %v", t.From, t.To, t.ReservationID, err)
			}
			continue
		}

		uc.metrics.RecordTransition(string(t.To), true)
		resp.Applied = append(resp.Applied, t)

		if err := uc.publisher.Publish(ctx, events.TypeStatusChanged, events.StatusChangedPayload{
			ReservationID: t.ReservationID,
			SpaceID:       t.SpaceID,
			From:          t.From,
			To:            t.To,
			At:            t.At,
		}); err != nil {
			uc.logger.Warn("AdvanceStatuses: failed to publish status change for id=%d: %v", t.ReservationID, err)
		}
	}

	if len(transitions) > 0 {
		uc.logger.Info("AdvanceStatuses: evaluated=%d, applied=%d, failed=%d",
			resp.Evaluated, len(resp.Applied), len(resp.Failed))
	}

	return resp, nil
}
