package validate_candidate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/evaluation"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/pricing"
	spaceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/space"
)

// UseCase use case для проверки кандидата без сохранения
type UseCase struct {
	spaceRepo       SpaceRepository
	reservationRepo ReservationRepository
	metrics         Metrics
	opts            Options
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	spaceRepo SpaceRepository,
	reservationRepo ReservationRepository,
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
		metrics:         metrics,
		opts:            opts,
		logger:          logger,
	}
}

// Execute проверяет кандидата по расписанию и существующим бронированиям
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateCandidate: space=%d, pricing=%s", req.SpaceID, req.PricingType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateCandidate: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем помещение
	space, err := uc.spaceRepo.GetByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("ValidateCandidate: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("ValidateCandidate: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrUpstreamUnavailable, err)
	}

	// 3. Вычисляем интервал и стоимость
	derived, err := pricing.Derive(space, req.PricingType, req.Params.In(uc.opts.Location))
	if err != nil {
		uc.logger.Warn("ValidateCandidate: cannot derive window: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Получаем занимающие бронирования на дни кандидата
	from, to := evaluation.OccupiedRange(req.PricingType, derived.Start, derived.End, uc.opts.Location)
	existing, err := uc.reservationRepo.ListOccupying(ctx, space.ID, from, to)
	if err != nil {
		uc.logger.Error("ValidateCandidate: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrUpstreamUnavailable, err)
	}

	// 5. Проверяем расписание и пересечения
	result, err := evaluation.Evaluate(space, req.PricingType, derived, existing, evaluation.Options{
		FullyBookedHours: uc.opts.FullyBookedHours,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, v := range result.Violations {
		uc.metrics.RecordViolation(string(v.Kind))
	}
	if len(result.Conflicts) > 0 {
		uc.metrics.RecordConflict(string(req.PricingType))
	}

	uc.logger.Info("ValidateCandidate: space=%d, valid=%t, violations=%d",
		space.ID, result.OK(), len(result.Violations))

	return &Response{
		Valid:          result.OK(),
		Violations:     result.Violations,
		Start:          derived.Start,
		End:            derived.End,
		Units:          derived.Units,
		BasePrice:      derived.BasePrice,
		PriceAvailable: derived.PriceAvailable,
	}, nil
}
