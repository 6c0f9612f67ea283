package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/guregu/null.v4"

	"github.com/Raorakshith/smartparking/internal/domain"
	bookingRepo "github.com/Raorakshith/smartparking/internal/infra/storage/booking"
	"github.com/Raorakshith/smartparking/internal/service/bookings/models"
	"github.com/Raorakshith/smartparking/pkg/metrics"
)

// Service сервис для чтения, отмены и обслуживания бронирований
type Service struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	lotRepo      LotRepository
	txManager    TransactionManager
	events       EventRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	lotRepo LotRepository,
	txManager TransactionManager,
	events EventRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		lotRepo:      lotRepo,
		txManager:    txManager,
		events:       events,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование может владелец или администратор
// Истекшая временная бронь считается несуществующей
func (s *Service) GetByID(ctx context.Context, id, requesterID string, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, requesterID)

	booking, err := s.getVisible(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !booking.IsOwnedBy(requesterID) && !isAdmin {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", requesterID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя, новые первыми
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%s", req.UserID, req.Status)

	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	// Пользователь видит только свои бронирования
	if req.UserID != req.RequesterID && !req.IsAdmin {
		s.logger.Warn("GetUserBookings: access denied for user=%s to bookings of user=%s", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	statuses, err := models.ParseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", req.Status, req.UserID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByFilter(ctx, domain.BookingFilter{
		UserID:      &req.UserID,
		Statuses:    statuses,
		NewestFirst: true,
	})
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}
	bookings = domain.WithoutExpiredHolds(bookings, s.timeProvider.Now())

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// ListBookings получает бронирования по фильтрам администратора
// С IncludeUserDetails к каждой записи добавляются имя и email пользователя и название лота
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("ListBookings: status=%q", req.Status)
	if req.UserID != nil {
		logMsg += fmt.Sprintf(", user=%s", *req.UserID)
	}
	if req.LotID != nil {
		logMsg += fmt.Sprintf(", lot=%s", *req.LotID)
	}
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.IncludeUserDetails {
		logMsg += ", includeUserDetails=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return nil, fmt.Errorf("%w: from date is after to date", ErrInvalidInput)
	}

	var (
		bookings []*domain.Booking
		users    map[string]*domain.User
		lots     []*domain.ParkingLot
	)

	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.GetByFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
		}
		bookings = domain.WithoutExpiredHolds(bookings, s.timeProvider.Now())

		if !req.IncludeUserDetails || len(bookings) == 0 {
			return nil
		}

		users, err = s.userRepo.GetByIDs(txCtx, distinctUserIDs(bookings))
		if err != nil {
			return fmt.Errorf("%w: ListBookings - get users: %v", ErrInternal, err)
		}
		lots, err = s.lotRepo.List(txCtx, false)
		if err != nil {
			return fmt.Errorf("%w: ListBookings - list lots: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ListBookings: %v", err)
		return nil, err
	}

	resp := models.FromDomainBookingList(bookings)
	if req.IncludeUserDetails {
		enrich(resp, users, lots)
	}

	s.logger.Info("ListBookings: successfully fetched %d bookings", resp.Total)
	return resp, nil
}

// Cancel отменяет подтвержденное бронирование владельцем до начала окна
func (s *Service) Cancel(ctx context.Context, bookingID, requesterID string) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, requesterID)

	if bookingID == "" || requesterID == "" {
		return nil, fmt.Errorf("%w: bookingId and requester are required", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	var cancelled *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Получаем бронирование с блокировкой строки
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%s not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Отменить может только владелец
		if !booking.IsOwnedBy(requesterID) {
			s.logger.Warn("Cancel: access denied for user=%s to cancel booking id=%s", requesterID, bookingID)
			return ErrAccessDenied
		}

		if booking.Status != domain.StatusConfirmed {
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if now.After(booking.StartTime) {
			s.logger.Warn("Cancel: booking id=%s already started at %s", bookingID, booking.StartTime.Format(time.RFC3339))
			return ErrAlreadyStarted
		}

		from := booking.Status
		if err := booking.TransitionTo(domain.StatusCancelled); err != nil {
			return fmt.Errorf("%w: %v", ErrCannotCancel, err)
		}
		booking.CancelledAt = null.TimeFrom(now)

		if err := s.bookingRepo.UpdateStatus(txCtx, booking, from); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrStatusConflict):
				s.logger.Warn("Cancel: booking id=%s changed concurrently", bookingID)
				return ErrCannotCancel
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		cancelled = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.RecordBookingEvent(metrics.EventCancelled)
	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return models.FromDomainBooking(cancelled), nil
}

// QRCode формирует содержимое QR-кода бронирования для владельца или администратора
func (s *Service) QRCode(ctx context.Context, bookingID, requesterID string, isAdmin bool) (*models.QRCodeResponse, error) {
	s.logger.Info("QRCode: booking id=%s, user=%s", bookingID, requesterID)

	booking, err := s.getVisible(ctx, "QRCode", bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsOwnedBy(requesterID) && !isAdmin {
		s.logger.Warn("QRCode: access denied for user=%s to booking id=%s", requesterID, bookingID)
		return nil, ErrAccessDenied
	}

	payload, err := json.Marshal(models.QRPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Timestamp: s.timeProvider.Now().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: QRCode - encode payload: %v", ErrInternal, err)
	}

	return &models.QRCodeResponse{BookingID: booking.ID, Payload: string(payload)}, nil
}

// SweepExpiredHolds переводит временные брони с истекшим сроком в expired и возвращает их количество
func (s *Service) SweepExpiredHolds(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	expired, err := s.bookingRepo.ExpireHolds(ctx, now, nil)
	if err != nil {
		s.logger.Error("SweepExpiredHolds: repository error: %v", err)
		return 0, fmt.Errorf("%w: SweepExpiredHolds - repository error: %v", ErrInternal, err)
	}

	for _, b := range expired {
		s.logger.Info("SweepExpiredHolds: hold id=%s expired, lot=%s, spot=%s, user=%s",
			b.ID, b.LotID, b.SpotID, b.UserID)
		s.events.RecordBookingEvent(metrics.EventHoldExpired)
	}

	return len(expired), nil
}

// Вспомогательные методы

// getVisible получает бронирование, скрывая истекшие временные брони
func (s *Service) getVisible(ctx context.Context, op, id string) (*domain.Booking, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.IsLapsed(s.timeProvider.Now()) {
		s.logger.Warn("%s: booking id=%s is an expired hold", op, id)
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func distinctUserIDs(bookings []*domain.Booking) []string {
	seen := make(map[string]struct{}, len(bookings))
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.UserID]; !ok {
			seen[b.UserID] = struct{}{}
			ids = append(ids, b.UserID)
		}
	}
	return ids
}

// enrich дополняет ответ данными пользователей и лотов
// Отсутствующие записи заменяются на "Unknown User" и "Unknown Lot"
func enrich(resp *models.BookingListResponse, users map[string]*domain.User, lots []*domain.ParkingLot) {
	lotNames := make(map[string]string, len(lots))
	for _, lot := range lots {
		lotNames[lot.ID] = lot.Name
	}

	for i := range resp.Bookings {
		b := &resp.Bookings[i]
		b.UserName = domain.UnknownUserName
		if u, ok := users[b.UserID]; ok {
			b.UserName = u.Name
			b.UserEmail = u.Email
		}
		b.LotName = domain.UnknownLotName
		if name, ok := lotNames[b.LotID]; ok {
			b.LotName = name
		}
	}
}
