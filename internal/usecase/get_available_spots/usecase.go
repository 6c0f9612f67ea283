package get_available_spots

import (
	"context"
	"errors"
	"fmt"

	"github.com/Raorakshith/smartparking/internal/availability"
	"github.com/Raorakshith/smartparking/internal/domain"
	lotRepo "github.com/Raorakshith/smartparking/internal/infra/storage/lot"
	"github.com/Raorakshith/smartparking/internal/pricing"
	"github.com/Raorakshith/smartparking/pkg/clock"
)

// UseCase use case для получения свободных мест лота на временное окно
type UseCase struct {
	bookingRepo  BookingRepository
	lotRepo      LotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	lotRepo LotRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		lotRepo:      lotRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных мест
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSpots: lot=%s, date=%s, window=%s-%s",
		req.LotID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSpots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время, дата интерпретируется в поясе кампуса
	now := uc.timeProvider.Now()
	date := clock.DateIn(req.Date, now.Location())

	// 3. Получаем лот
	lot, err := uc.lotRepo.GetByID(ctx, req.LotID)
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			uc.logger.Warn("GetAvailableSpots: lot id=%s not found", req.LotID)
			return nil, ErrLotNotFound
		}
		uc.logger.Error("GetAvailableSpots: failed to get lot id=%s: %v", req.LotID, err)
		return nil, fmt.Errorf("%w: failed to get lot: %v", ErrInternal, err)
	}

	// 4. Переводим окно HH:MM в моменты времени
	start, end, err := pricing.NormalizeInterval(date, req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("GetAvailableSpots: invalid window: %v", err)
		return nil, err
	}

	// 5. Получаем активные бронирования лота на дату
	bookings, err := uc.bookingRepo.GetByFilter(ctx, domain.BookingFilter{
		LotID:    &req.LotID,
		Statuses: domain.ActiveStatuses,
		DateFrom: &date,
		DateTo:   &date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSpots: failed to get bookings for lot id=%s: %v", req.LotID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Вычисляем свободные места
	spots, err := availability.AvailableSpots(lot, bookings, start, end, now)
	if err != nil {
		uc.logger.Warn("GetAvailableSpots: %v", err)
		return nil, err
	}

	resp := &Response{
		LotID:       lot.ID,
		LotName:     lot.Name,
		Date:        date,
		WindowStart: start,
		WindowEnd:   end,
		Spots:       spots,
		TotalSpots:  len(lot.Spots),
		HourlyRate:  lot.HourlyRate,
	}

	// 7. Оценка стоимости не обязательна: у лота с некорректным тарифом места всё равно показываем
	if hours, cost, err := pricing.Estimate(lot.HourlyRate, start, end); err == nil {
		resp.EstimatedHours = hours
		resp.EstimatedCost = cost
	}

	uc.logger.Info("GetAvailableSpots: lot=%s has %d/%d free spots", lot.ID, len(spots), len(lot.Spots))
	return resp, nil
}
