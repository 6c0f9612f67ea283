package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/guregu/null.v4"

	"github.com/Raorakshith/smartparking/internal/domain"
	bookingRepo "github.com/Raorakshith/smartparking/internal/infra/storage/booking"
	"github.com/Raorakshith/smartparking/pkg/metrics"
)

// UseCase use case для подтверждения временного удержания после оплаты
type UseCase struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	txManager    TransactionManager
	events       EventRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	events EventRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		events:       events,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute переводит бронь temporary -> confirmed и добавляет её в список пользователя
// Обе записи выполняются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: booking=%s, method=%s, amount=%.2f",
		req.BookingID, req.Payment.Method, req.Payment.Amount)

	// 1. Валидация входных данных
	if req.BookingID == "" {
		uc.logger.Warn("ConfirmBooking: empty booking id")
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Выполняем операции с БД в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронь с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ConfirmBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3.2. Удержание истекло: уже переведено в expired очисткой или срок прошел сейчас
		if booking.IsLapsed(now) {
			uc.logger.Warn("ConfirmBooking: hold id=%s expired at %s", booking.ID, booking.ExpiresAt.Time)
			return ErrHoldExpired
		}

		// 3.3. Подтвердить можно только удержание, повторное подтверждение отклоняется
		if booking.Status != domain.StatusTemporary {
			uc.logger.Warn("ConfirmBooking: booking id=%s has status %s", booking.ID, booking.Status)
			return ErrNotTemporary
		}

		// 3.4. Меняем статус по таблице переходов
		from := booking.Status
		if err := booking.TransitionTo(domain.StatusConfirmed); err != nil {
			return fmt.Errorf("%w: %v", ErrNotTemporary, err)
		}
		payment := req.Payment
		booking.Payment = &payment
		booking.ExpiresAt = null.Time{}

		// 3.5. Сохраняем, только если статус не изменился параллельно
		if err := uc.bookingRepo.UpdateStatus(txCtx, booking, from); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrStatusConflict):
				uc.logger.Warn("ConfirmBooking: booking id=%s changed concurrently", booking.ID)
				return ErrNotTemporary
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				uc.logger.Warn("ConfirmBooking: booking id=%s removed concurrently", booking.ID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		// 3.6. Добавляем бронь в список пользователя
		if err := uc.userRepo.AddBooking(txCtx, booking.UserID, booking.ID); err != nil {
			uc.logger.Error("ConfirmBooking: failed to add booking id=%s to user=%s: %v",
				booking.ID, booking.UserID, err)
			return fmt.Errorf("%w: failed to add booking to user: %v", ErrInternal, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.events.RecordBookingEvent(metrics.EventConfirmed)
	uc.events.AddRevenue(result.PaymentAmount())
	uc.logger.Info("ConfirmBooking: booking id=%s confirmed for user=%s", result.ID, result.UserID)

	return &Response{
		BookingID:   result.ID,
		UserID:      result.UserID,
		Status:      string(result.Status),
		Payment:     *result.Payment,
		ConfirmedAt: now,
	}, nil
}
