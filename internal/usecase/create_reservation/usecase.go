package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/evaluation"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/pricing"
	"github.com/m04kA/SMC-SpaceBookingService/internal/infra/events"
	spaceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/space"
)

// UseCase use case для создания бронирования
type UseCase struct {
	spaceRepo       SpaceRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	opts            Options
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	spaceRepo SpaceRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &UseCase{
		spaceRepo:       spaceRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		opts:            opts,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка и вставка идут в одной сериализуемой транзакции под блокировкой строки помещения,
// поэтому два параллельных кандидата на одно время не могут пройти оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, space=%d, pricing=%s", req.UserID, req.SpaceID, req.PricingType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	params := req.Params.In(uc.opts.Location)

	var (
		created *domain.Reservation
		derived *pricing.Derived
	)

	// 2. Проверяем и сохраняем в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем помещение с блокировкой (FOR UPDATE)
		space, err := uc.spaceRepo.GetByID(txCtx, req.SpaceID)
		if err != nil {
			if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
				uc.logger.Warn("CreateReservation: space id=%d not found", req.SpaceID)
				return ErrSpaceNotFound
			}
			uc.logger.Error("CreateReservation: failed to get space id=%d: %v", req.SpaceID, err)
			return fmt.Errorf("%w: failed to get space: %v", ErrUpstreamUnavailable, err)
		}

		// 2.2. Вычисляем интервал и стоимость
		derived, err = pricing.Derive(space, req.PricingType, params)
		if err != nil {
			uc.logger.Warn("CreateReservation: cannot derive window: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 2.3. Снимок занимающих бронирований на дни кандидата
		from, to := evaluation.OccupiedRange(req.PricingType, derived.Start, derived.End, uc.opts.Location)
		existing, err := uc.reservationRepo.ListOccupying(txCtx, space.ID, from, to)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list reservations: %v", err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrUpstreamUnavailable, err)
		}

		// 2.4. Проверяем расписание и пересечения
		result, err := evaluation.Evaluate(space, req.PricingType, derived, existing, evaluation.Options{
			FullyBookedHours: uc.opts.FullyBookedHours,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !result.OK() {
			for _, v := range result.Violations {
				uc.metrics.RecordViolation(string(v.Kind))
			}
			if len(result.Conflicts) > 0 {
				uc.metrics.RecordConflict(string(req.PricingType))
			}
			uc.logger.Warn("CreateReservation: rejected, %d violations", len(result.Violations))
			return &RejectedError{Violations: result.Violations}
		}

		// 2.5. Сохраняем бронирование в статусе pending
		reservation := &domain.Reservation{
			SpaceID:     space.ID,
			UserID:      req.UserID,
			PricingType: req.PricingType,
			StartAt:     derived.Start,
			EndAt:       derived.End,
			Status:      domain.StatusPending,
			BasePrice:   derived.BasePrice,
			Notes:       req.Notes,
		}
		if req.PricingType == domain.PricingHalfDay {
			session := params.Session
			reservation.Session = &session
		}

		created, err = uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrUpstreamUnavailable, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordReservationCreated(string(created.PricingType))
	uc.logger.Info("CreateReservation: successfully created reservation id=%d", created.ID)

	// 3. Событие публикуется после коммита, ошибка не отменяет бронирование
	if err := uc.publisher.Publish(ctx, events.TypeReservationCreated, events.NewReservationPayload(created)); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish event for id=%d: %v", created.ID, err)
	}

	return &Response{
		Reservation:    created,
		Units:          derived.Units,
		PriceAvailable: derived.PriceAvailable,
	}, nil
}
