package get_revenue_report

import (
	"context"
	"fmt"

	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/internal/reporting"
	"github.com/Raorakshith/smartparking/pkg/clock"
)

// UseCase use case для отчета о выручке за период
type UseCase struct {
	bookingRepo  BookingRepository
	lotRepo      LotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	lotRepo LotRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		lotRepo:      lotRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute считает выручку подтвержденных бронирований с датой в [From, To]
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	loc := uc.timeProvider.Now().Location()

	// 1. Даты интерпретируются в поясе кампуса
	from, to := req.From, req.To
	if !from.IsZero() {
		from = clock.DateIn(from, loc)
	}
	if !to.IsZero() {
		to = clock.DateIn(to, loc)
	}

	// 2. Валидация периода
	if err := validateRange(from, to); err != nil {
		uc.logger.Warn("GetRevenueReport: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetRevenueReport: from=%s, to=%s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	var (
		bookings []*domain.Booking
		lots     []*domain.ParkingLot
	)

	// 3. Читаем бронирования и лоты в одной read-only транзакции
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		bookings, err = uc.bookingRepo.GetByFilter(txCtx, domain.BookingFilter{
			Statuses: []domain.BookingStatus{domain.StatusConfirmed},
			DateFrom: &from,
			DateTo:   &to,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		lots, err = uc.lotRepo.List(txCtx, false)
		if err != nil {
			return fmt.Errorf("%w: failed to list lots: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("GetRevenueReport: %v", err)
		return nil, err
	}

	// 4. Агрегируем
	resp := &Response{
		From:          from,
		To:            to,
		TotalRevenue:  reporting.TotalRevenue(bookings),
		BookingsCount: reporting.CountByStatus(bookings, domain.StatusConfirmed),
		ByLot:         reporting.RevenueByLot(lots, bookings),
		ByDate:        reporting.RevenueByDate(bookings),
	}

	uc.logger.Info("GetRevenueReport: %d bookings, revenue=%.2f", resp.BookingsCount, resp.TotalRevenue)
	return resp, nil
}
