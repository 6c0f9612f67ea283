package checkout_booking

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/guregu/null.v4"

	"github.com/Raorakshith/smartparking/internal/domain"
	bookingRepo "github.com/Raorakshith/smartparking/internal/infra/storage/booking"
	"github.com/Raorakshith/smartparking/internal/pricing"
	"github.com/Raorakshith/smartparking/pkg/metrics"
)

// UseCase use case для выезда с парковки и финального расчета
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	events       EventRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	events EventRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		events:       events,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute закрывает подтвержденную бронь: confirmed -> completed
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckoutBooking: booking=%s, requester=%s, admin=%t", req.BookingID, req.RequesterID, req.IsAdmin)

	// 1. Валидация входных данных
	if req.BookingID == "" || req.RequesterID == "" {
		uc.logger.Warn("CheckoutBooking: booking id and requester are required")
		return nil, fmt.Errorf("%w: bookingId and requester are required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var settlement pricing.Settlement

	// 3. Выполняем операции с БД в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронь с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CheckoutBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CheckoutBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3.2. Проверяем права: владелец или администратор
		if !booking.IsOwnedBy(req.RequesterID) && !req.IsAdmin {
			uc.logger.Warn("CheckoutBooking: user=%s is not allowed to check out booking id=%s",
				req.RequesterID, booking.ID)
			return ErrAccessDenied
		}

		// 3.3. Выезд возможен только из confirmed
		if booking.Status != domain.StatusConfirmed {
			uc.logger.Warn("CheckoutBooking: booking id=%s has status %s", booking.ID, booking.Status)
			return ErrNotConfirmed
		}

		// 3.4. Расчет фактической длительности и доплаты
		settlement = pricing.Settle(booking, now)

		from := booking.Status
		if err := booking.TransitionTo(domain.StatusCompleted); err != nil {
			return fmt.Errorf("%w: %v", ErrNotConfirmed, err)
		}
		booking.ActualEndTime = null.TimeFrom(now)
		booking.ActualDuration = null.FloatFrom(settlement.ActualDurationHours)
		booking.AdditionalCost = null.FloatFrom(settlement.AdditionalCost)
		booking.FinalCost = null.FloatFrom(settlement.FinalCost)

		// 3.5. Сохраняем, только если статус не изменился параллельно
		if err := uc.bookingRepo.UpdateStatus(txCtx, booking, from); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrStatusConflict):
				uc.logger.Warn("CheckoutBooking: booking id=%s changed concurrently", booking.ID)
				return ErrNotConfirmed
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			}
			uc.logger.Error("CheckoutBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.events.RecordBookingEvent(metrics.EventCheckedOut)
	uc.events.AddRevenue(settlement.AdditionalCost)

	if settlement.Late {
		uc.logger.Info("CheckoutBooking: booking id=%s completed late by %.2fh, additional=%.2f, final=%.2f",
			req.BookingID, settlement.OvertimeHours, settlement.AdditionalCost, settlement.FinalCost)
	} else {
		uc.logger.Info("CheckoutBooking: booking id=%s completed, actual=%.2fh, final=%.2f",
			req.BookingID, settlement.ActualDurationHours, settlement.FinalCost)
	}

	return &Response{
		BookingID:           req.BookingID,
		Status:              string(domain.StatusCompleted),
		CheckoutTime:        settlement.CheckoutTime,
		ActualDurationHours: settlement.ActualDurationHours,
		OvertimeHours:       settlement.OvertimeHours,
		AdditionalCost:      settlement.AdditionalCost,
		FinalCost:           settlement.FinalCost,
		Late:                settlement.Late,
	}, nil
}
