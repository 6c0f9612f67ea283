package lots

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Raorakshith/smartparking/internal/domain"
	lotRepo "github.com/Raorakshith/smartparking/internal/infra/storage/lot"
	"github.com/Raorakshith/smartparking/internal/service/lots/models"
)

// Service сервис управления парковочными лотами
type Service struct {
	lotRepo     LotRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса лотов
func NewService(
	lotRepo LotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		lotRepo:     lotRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// List получает лоты, отсортированные по имени
// includeInactive - для администратора
func (s *Service) List(ctx context.Context, includeInactive bool) (*models.LotListResponse, error) {
	s.logger.Info("List: fetching lots, includeInactive=%t", includeInactive)

	lots, err := s.lotRepo.List(ctx, !includeInactive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d lots", len(lots))
	return models.FromDomainLotList(lots), nil
}

// Get получает лот по ID
func (s *Service) Get(ctx context.Context, id string) (*models.LotResponse, error) {
	lot, err := s.get(ctx, "Get", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainLot(lot), nil
}

// Create создает новый лот
// totalSpots по умолчанию равно числу мест, нулевой тариф заменяется тарифом по умолчанию
func (s *Service) Create(ctx context.Context, req *models.LotRequest) (*models.LotResponse, error) {
	s.logger.Info("Create: creating lot name=%q with %d spots", req.Name, len(req.Spots))

	lot := &domain.ParkingLot{ID: uuid.NewString(), Active: true}
	req.ApplyTo(lot)

	if err := lot.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var created *domain.ParkingLot
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.lotRepo.Create(txCtx, lot)
		return err
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created lot id=%s", created.ID)
	return models.FromDomainLot(created), nil
}

// Update полностью заменяет атрибуты и список мест лота
// Если active не передан, текущее значение сохраняется
func (s *Service) Update(ctx context.Context, id string, req *models.LotRequest) (*models.LotResponse, error) {
	s.logger.Info("Update: updating lot id=%s", id)

	var updated *domain.ParkingLot
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		lot, err := s.get(txCtx, "Update", id)
		if err != nil {
			return err
		}

		req.ApplyTo(lot)
		if err := lot.Validate(); err != nil {
			s.logger.Warn("Update: validation failed for lot id=%s: %v", id, err)
			return err
		}

		updated, err = s.lotRepo.Update(txCtx, lot)
		if err != nil {
			if errors.Is(err, lotRepo.ErrLotNotFound) {
				return ErrLotNotFound
			}
			s.logger.Error("Update: repository error for lot id=%s: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated lot id=%s", id)
	return models.FromDomainLot(updated), nil
}

// SetActive включает или выключает лот
func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	s.logger.Info("SetActive: lot id=%s, active=%t", id, active)

	if err := s.lotRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("SetActive: lot id=%s not found", id)
			return ErrLotNotFound
		}
		s.logger.Error("SetActive: repository error for lot id=%s: %v", id, err)
		return fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}
	return nil
}

// Delete физически удаляет лот
// Лот с подтвержденными бронированиями удалить нельзя, его можно только выключить
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting lot id=%s", id)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		inUse, err := s.bookingRepo.ExistsByLotAndStatus(txCtx, id, domain.StatusConfirmed)
		if err != nil {
			s.logger.Error("Delete: failed to check bookings of lot id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - check bookings: %v", ErrInternal, err)
		}
		if inUse {
			s.logger.Warn("Delete: lot id=%s has confirmed bookings", id)
			return ErrLotInUse
		}

		if err := s.lotRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, lotRepo.ErrLotNotFound) {
				s.logger.Warn("Delete: lot id=%s not found", id)
				return ErrLotNotFound
			}
			s.logger.Error("Delete: repository error for lot id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Delete: successfully deleted lot id=%s", id)
		return nil
	})
}

func (s *Service) get(ctx context.Context, op, id string) (*domain.ParkingLot, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: lot id is required", ErrInvalidInput)
	}

	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("%s: lot id=%s not found", op, id)
			return nil, ErrLotNotFound
		}
		s.logger.Error("%s: repository error for lot id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return lot, nil
}
