package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/availability"
	spaceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/space"
)

// UseCase use case для получения календаря доступности помещения
type UseCase struct {
	spaceRepo       SpaceRepository
	reservationRepo ReservationRepository
	opts            Options
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	spaceRepo SpaceRepository,
	reservationRepo ReservationRepository,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &UseCase{
		spaceRepo:       spaceRepo,
		reservationRepo: reservationRepo,
		opts:            opts,
		logger:          logger,
	}
}

// Execute выполняет use case построения календаря доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	loc := uc.opts.Location

	// 1. Валидация входных данных
	if err := validateRequest(req, loc, uc.opts.MaxRangeDays); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	from := domain.StartOfDay(req.From, loc)
	to := domain.StartOfDay(req.To, loc)

	uc.logger.Info("CheckAvailability: space=%d, from=%s, to=%s",
		req.SpaceID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	// 2. Получаем помещение с расписанием
	space, err := uc.spaceRepo.GetByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("CheckAvailability: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrUpstreamUnavailable, err)
	}

	// 3. Получаем занимающие бронирования за период (конец не включается)
	reservations, err := uc.reservationRepo.ListOccupying(ctx, space.ID, from, to.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrUpstreamUnavailable, err)
	}

	// 4. Строим индекс занятости
	schedule := space.Schedule
	idx, err := availability.Build(space.ID, reservations, from, to, availability.Options{
		FullyBookedHours: uc.opts.FullyBookedHours,
		Schedule:         &schedule,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	uc.logger.Info("CheckAvailability: space=%d, %d reservations, %d days, %d booked slots",
		space.ID, len(reservations), len(idx.Days), len(idx.Slots))

	return &Response{
		SpaceID: space.ID,
		From:    idx.From,
		To:      idx.To,
		Days:    idx.Days,
		Slots:   idx.Slots,
	}, nil
}
