package create_hold

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"

	"github.com/Raorakshith/smartparking/internal/availability"
	"github.com/Raorakshith/smartparking/internal/domain"
	bookingRepo "github.com/Raorakshith/smartparking/internal/infra/storage/booking"
	lotRepo "github.com/Raorakshith/smartparking/internal/infra/storage/lot"
	"github.com/Raorakshith/smartparking/internal/infra/storage/pgerr"
	"github.com/Raorakshith/smartparking/internal/pricing"
	"github.com/Raorakshith/smartparking/pkg/clock"
	"github.com/Raorakshith/smartparking/pkg/metrics"
)

// UseCase use case для временного удержания места
type UseCase struct {
	bookingRepo  BookingRepository
	lotRepo      LotRepository
	txManager    TransactionManager
	events       EventRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	lotRepo LotRepository,
	txManager TransactionManager,
	events EventRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		lotRepo:      lotRepo,
		txManager:    txManager,
		events:       events,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute создает бронь в статусе temporary на HoldDuration
// Проверка занятости и вставка выполняются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: user=%s, lot=%s, spot=%s, date=%s, window=%s-%s",
		req.UserID, req.LotID, req.SpotID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время, дата интерпретируется в поясе кампуса
	now := uc.timeProvider.Now()
	date := clock.DateIn(req.Date, now.Location())

	// 3. Проверяем формат времени и окно
	start, end, err := normalizeWindow(date, req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CreateHold: invalid window: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем лот
		lot, err := uc.lotRepo.GetByID(txCtx, req.LotID)
		if err != nil {
			if errors.Is(err, lotRepo.ErrLotNotFound) {
				uc.logger.Warn("CreateHold: lot id=%s not found", req.LotID)
				return ErrLotNotFound
			}
			uc.logger.Error("CreateHold: failed to get lot id=%s: %v", req.LotID, err)
			return fmt.Errorf("%w: failed to get lot: %v", ErrInternal, err)
		}

		// 4.2. Место, активность лота, тариф
		if err := validateLot(lot, req.SpotID); err != nil {
			uc.logger.Warn("CreateHold: lot validation failed: %v", err)
			return err
		}

		totalCost, err := pricing.BaseCost(lot.HourlyRate, start, end)
		if err != nil {
			uc.logger.Warn("CreateHold: failed to price window: %v", err)
			return err
		}

		// 4.3. Переводим истекшие удержания лота в expired, иначе ограничение исключения не даст занять место
		expired, err := uc.bookingRepo.ExpireHolds(txCtx, now, &req.LotID)
		if err != nil {
			uc.logger.Error("CreateHold: failed to expire holds for lot id=%s: %v", req.LotID, err)
			return fmt.Errorf("%w: failed to expire holds: %v", ErrInternal, err)
		}
		if len(expired) > 0 {
			uc.logger.Info("CreateHold: expired %d holds in lot id=%s", len(expired), req.LotID)
		}

		// 4.4. Получаем активные бронирования места на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByFilter(txCtx, domain.BookingFilter{
			LotID:    &req.LotID,
			SpotID:   &req.SpotID,
			Statuses: domain.ActiveStatuses,
			DateFrom: &date,
			DateTo:   &date,
		})
		if err != nil {
			uc.logger.Error("CreateHold: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 4.5. Проверяем, что место свободно
		if !availability.IsSpotFree(req.SpotID, bookings, start, end, now) {
			uc.logger.Warn("CreateHold: spot %s in lot %s is taken for %s-%s",
				req.SpotID, req.LotID, req.StartTime, req.EndTime)
			return ErrSpotUnavailable
		}

		// 4.6. Сохраняем удержание
		booking := &domain.Booking{
			ID:            uuid.NewString(),
			UserID:        req.UserID,
			LotID:         req.LotID,
			SpotID:        req.SpotID,
			BookingDate:   date,
			StartTime:     start,
			EndTime:       end,
			Status:        domain.StatusTemporary,
			HourlyRate:    lot.HourlyRate,
			DurationHours: pricing.Hours(start, end),
			TotalCost:     totalCost,
			ExpiresAt:     null.TimeFrom(now.Add(domain.HoldDuration)),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrHoldConflict) {
				uc.logger.Warn("CreateHold: concurrent hold on spot %s in lot %s", req.SpotID, req.LotID)
				return ErrSpotUnavailable
			}
			uc.logger.Error("CreateHold: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конфликт сериализации при commit означает, что место заняли параллельно
		if pgerr.IsConflict(err) {
			uc.logger.Warn("CreateHold: serialization conflict for spot %s in lot %s: %v", req.SpotID, req.LotID, err)
			return nil, ErrSpotUnavailable
		}
		return nil, err
	}

	uc.events.RecordBookingEvent(metrics.EventHoldCreated)
	uc.logger.Info("CreateHold: created hold id=%s, expires at %s", result.ID, result.ExpiresAt.Time.Format("15:04:05"))

	return &Response{
		ID:            result.ID,
		UserID:        result.UserID,
		LotID:         result.LotID,
		SpotID:        result.SpotID,
		BookingDate:   result.BookingDate,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		Status:        string(result.Status),
		HourlyRate:    result.HourlyRate,
		DurationHours: result.DurationHours,
		TotalCost:     result.TotalCost,
		ExpiresAt:     result.ExpiresAt.Time,
		CreatedAt:     result.CreatedAt,
	}, nil
}
