package spaces

import (
	"context"
	"errors"
	"fmt"

	spaceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/space"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/spaces/models"
)

// Service сервис для работы с помещениями: расписание работы и прайс
type Service struct {
	spaceRepo SpaceRepository
	txManager TransactionManager
	validator *Validator
	logger    Logger
}

// NewService создает новый экземпляр сервиса помещений
func NewService(
	spaceRepo SpaceRepository,
	txManager TransactionManager,
	validator *Validator,
	logger Logger,
) *Service {
	return &Service{
		spaceRepo: spaceRepo,
		txManager: txManager,
		validator: validator,
		logger:    logger,
	}
}

// Create создает помещение с расписанием и прайсом
func (s *Service) Create(ctx context.Context, req *models.SpaceRequest) (*models.SpaceResponse, error) {
	s.logger.Info("Create: creating space name=%q", req.Name)

	// 1. Валидируем входные данные
	if err := s.validator.Validate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем карточку, расписание и прайс одной транзакцией
	space := req.ToDomainSpace()
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := s.spaceRepo.Create(txCtx, space)
		if err != nil {
			return err
		}
		space = created
		return nil
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrUpstreamUnavailable, err)
	}

	s.logger.Info("Create: successfully created space id=%d", space.ID)
	return models.FromDomainSpace(space), nil
}

// Get получает помещение по ID
func (s *Service) Get(ctx context.Context, id int64) (*models.SpaceResponse, error) {
	s.logger.Info("Get: fetching space id=%d", id)

	space, err := s.spaceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("Get: space id=%d not found", id)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("Get: repository error for space id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrUpstreamUnavailable, err)
	}

	return models.FromDomainSpace(space), nil
}

// Update полностью заменяет расписание и прайс помещения
// Уже созданные бронирования не перепроверяются
func (s *Service) Update(ctx context.Context, id int64, req *models.SpaceRequest) (*models.SpaceResponse, error) {
	s.logger.Info("Update: updating space id=%d", id)

	if err := s.validator.Validate(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	var updated *models.SpaceResponse
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Блокируем строку помещения на время замены расписания
		if _, err := s.spaceRepo.GetByID(txCtx, id); err != nil {
			if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
				return ErrSpaceNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrUpstreamUnavailable, err)
		}

		space := req.ToDomainSpace()
		space.ID = id

		saved, err := s.spaceRepo.Update(txCtx, space)
		if err != nil {
			if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
				return ErrSpaceNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrUpstreamUnavailable, err)
		}

		updated = models.FromDomainSpace(saved)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSpaceNotFound) {
			s.logger.Warn("Update: space id=%d not found", id)
		} else {
			s.logger.Error("Update: failed for space id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Update: successfully updated space id=%d", id)
	return updated, nil
}
