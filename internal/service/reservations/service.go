package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/evaluation"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/lifecycle"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/pricing"
	"github.com/m04kA/SMC-SpaceBookingService/internal/infra/events"
	reservationRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/reservation"
	spaceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/space"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations/models"
)

// Options параметры сервиса
type Options struct {
	FullyBookedHours int
	Location         *time.Location
}

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	spaceRepo       SpaceRepository
	txManager       TransactionManager
	publisher       EventPublisher
	opts            Options
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	spaceRepo SpaceRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	opts Options,
	logger Logger,
) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{
		reservationRepo: reservationRepo,
		spaceRepo:       spaceRepo,
		txManager:       txManager,
		publisher:       publisher,
		opts:            opts,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.getReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainReservation(reservation, s.now()), nil
}

// ListBySpace получает бронирования помещения, опционально за период и по статусу
func (s *Service) ListBySpace(ctx context.Context, req *models.ListSpaceReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListBySpace: fetching reservations for space=%d", req.SpaceID)

	if req.SpaceID <= 0 {
		return nil, fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	filter := domain.ReservationsFilter{SpaceID: &req.SpaceID}

	if req.From != nil {
		from := domain.StartOfDay(*req.From, s.opts.Location)
		filter.From = &from
	}
	if req.To != nil {
		to := domain.StartOfDay(*req.To, s.opts.Location).AddDate(0, 0, 1)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}

	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListBySpace: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Statuses = []domain.ReservationStatus{status}
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBySpace: repository error for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: ListBySpace - repository error: %v", ErrUpstreamUnavailable, err)
	}

	s.logger.Info("ListBySpace: fetched %d reservations for space=%d", len(list), req.SpaceID)
	return models.FromDomainReservationList(list, s.now()), nil
}

// ListByUser получает историю бронирований пользователя
func (s *Service) ListByUser(ctx context.Context, req *models.ListUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByUser: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	filter := domain.ReservationsFilter{UserID: &req.UserID}
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListByUser: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Statuses = []domain.ReservationStatus{status}
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrUpstreamUnavailable, err)
	}

	s.logger.Info("ListByUser: fetched %d reservations for user=%d", len(list), req.UserID)
	return models.FromDomainReservationList(list, s.now()), nil
}

// Confirm подтверждает ожидающее бронирование (внешнее одобрение)
// Ожидающие бронирования не занимают помещение, поэтому пересечения проверяются
// повторно в сериализуемой транзакции под блокировкой строки помещения
func (s *Service) Confirm(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("Confirm: confirming reservation id=%d", id)

	var confirmed *domain.Reservation

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронирование с блокировкой
		reservation, err := s.getReservation(txCtx, "Confirm", id)
		if err != nil {
			return err
		}

		if !reservation.CanBeConfirmed() {
			s.logger.Warn("Confirm: reservation id=%d cannot be confirmed, status=%s", id, reservation.Status)
			return fmt.Errorf("%w: status is %s", ErrCannotConfirm, reservation.Status)
		}

		// 2. Помещение с блокировкой
		space, err := s.spaceRepo.GetByID(txCtx, reservation.SpaceID)
		if err != nil {
			if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
				return ErrSpaceNotFound
			}
			s.logger.Error("Confirm: failed to get space id=%d: %v", reservation.SpaceID, err)
			return fmt.Errorf("%w: Confirm - failed to get space: %v", ErrUpstreamUnavailable, err)
		}

		// 3. Повторная проверка пересечений
		if err := s.checkOverlap(txCtx, space, reservation); err != nil {
			return err
		}

		// 4. pending -> confirmed
		if err := s.reservationRepo.ApplyStatusTransition(txCtx, id, domain.StatusPending, domain.StatusConfirmed); err != nil {
			if errors.Is(err, reservationRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: %v", ErrCannotConfirm, err)
			}
			s.logger.Error("Confirm: repository error for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: Confirm - repository error: %v", ErrUpstreamUnavailable, err)
		}

		reservation.Status = domain.StatusConfirmed
		confirmed = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: successfully confirmed reservation id=%d", id)
	s.publish(ctx, events.TypeReservationConfirmed, confirmed)

	return models.FromDomainReservation(confirmed, s.now()), nil
}

// Cancel отменяет бронирование с необязательной причиной
// Завершённое по времени бронирование отменить нельзя, даже если статус в хранилище ещё не обновлён
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d", id)

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason longer than %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var cancelled *domain.Reservation
	now := s.now()

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.getReservation(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		effective := lifecycle.EffectiveStatus(reservation, now)
		if !reservation.CanBeCancelled() || effective.IsTerminal() {
			s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, effective)
			return fmt.Errorf("%w: status is %s", ErrCannotCancel, effective)
		}

		if err := s.reservationRepo.Cancel(txCtx, id, req.Reason, now); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrUpstreamUnavailable, err)
		}

		reservation.Status = domain.StatusCancelled
		reservation.CancellationReason = req.Reason
		reservation.CancelledAt = &now
		cancelled = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	s.publish(ctx, events.TypeReservationCancelled, cancelled)

	return models.FromDomainReservation(cancelled, now), nil
}

// Вспомогательные методы

func (s *Service) now() time.Time {
	return s.timeProvider.Now().In(s.opts.Location)
}

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrUpstreamUnavailable, op, err)
	}
	return reservation, nil
}

// checkOverlap проверяет бронирование против занимающих бронирований помещения
// Расписание здесь не проверяется: оно проверено при создании и могло измениться позже
func (s *Service) checkOverlap(ctx context.Context, space *domain.Space, r *domain.Reservation) error {
	loc := s.opts.Location
	derived := &pricing.Derived{Start: r.StartAt.In(loc), End: r.EndAt.In(loc)}

	from, to := evaluation.OccupiedRange(r.PricingType, derived.Start, derived.End, loc)
	existing, err := s.reservationRepo.ListOccupying(ctx, space.ID, from, to)
	if err != nil {
		s.logger.Error("Confirm: failed to list reservations: %v", err)
		return fmt.Errorf("%w: Confirm - failed to list reservations: %v", ErrUpstreamUnavailable, err)
	}

	result, err := evaluation.Evaluate(space, r.PricingType, derived, existing, evaluation.Options{
		FullyBookedHours: s.opts.FullyBookedHours,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if len(result.Conflicts) > 0 {
		ids := make([]int64, len(result.Conflicts))
		for i, c := range result.Conflicts {
			ids[i] = c.ID
		}
		s.logger.Warn("Confirm: reservation id=%d overlaps with %v", r.ID, ids)
		return fmt.Errorf("%w: reservations %v", ErrConflict, ids)
	}
	return nil
}

// publish публикует событие, ошибка только логируется
func (s *Service) publish(ctx context.Context, eventType string, r *domain.Reservation) {
	if err := s.publisher.Publish(ctx, eventType, events.NewReservationPayload(r)); err != nil {
		s.logger.Warn("publish: failed to publish %s for reservation id=%d: %v", eventType, r.ID, err)
	}
}
