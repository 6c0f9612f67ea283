package get_dashboard

import (
	"context"
	"fmt"

	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/internal/reporting"
	"github.com/Raorakshith/smartparking/pkg/clock"
)

// UseCase use case для сводки администратора
type UseCase struct {
	bookingRepo  BookingRepository
	lotRepo      LotRepository
	userRepo     UserRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	recentLimit  int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// recentLimit <= 0 заменяется на DefaultRecentLimit
func NewUseCase(
	bookingRepo BookingRepository,
	lotRepo LotRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	recentLimit int,
	logger Logger,
) *UseCase {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		lotRepo:      lotRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		recentLimit:  recentLimit,
		logger:       logger,
	}
}

// Execute собирает сводку на текущий момент
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	today := clock.StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	uc.logger.Info("GetDashboard: building dashboard for %s", today.Format(domain.DateFormat))

	var (
		recent        []*domain.Booking
		lots          []*domain.ParkingLot
		bookingsToday []*domain.Booking
		createdToday  []*domain.Booking
		users         map[string]*domain.User
	)

	// Все чтения в одной read-only транзакции, чтобы сводка была согласованной
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error

		// 1. Последние N бронирований
		recent, err = uc.bookingRepo.GetByFilter(txCtx, domain.BookingFilter{
			NewestFirst: true,
			Limit:       uc.recentLimit,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get recent bookings: %v", ErrInternal, err)
		}
		recent = domain.WithoutExpiredHolds(recent, now)

		// 2. Все лоты, включая неактивные
		lots, err = uc.lotRepo.List(txCtx, false)
		if err != nil {
			return fmt.Errorf("%w: failed to list lots: %v", ErrInternal, err)
		}

		// 3. Подтвержденные бронирования на сегодня для загрузки
		bookingsToday, err = uc.bookingRepo.GetByFilter(txCtx, domain.BookingFilter{
			Statuses: []domain.BookingStatus{domain.StatusConfirmed},
			DateFrom: &today,
			DateTo:   &today,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get today's bookings: %v", ErrInternal, err)
		}

		// 4. Подтвержденные бронирования, созданные сегодня, для выручки по лотам
		createdToday, err = uc.bookingRepo.GetByFilter(txCtx, domain.BookingFilter{
			Statuses:    []domain.BookingStatus{domain.StatusConfirmed},
			CreatedFrom: &today,
			CreatedTo:   &tomorrow,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings created today: %v", ErrInternal, err)
		}

		// 5. Пользователи из ленты
		users, err = uc.userRepo.GetByIDs(txCtx, userIDs(headOf(recent, RecentBookingsCount)))
		if err != nil {
			return fmt.Errorf("%w: failed to get users: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("GetDashboard: %v", err)
		return nil, err
	}

	occupancy := reporting.OccupancyByLot(lots, bookingsToday)
	confirmed := withStatus(recent, domain.StatusConfirmed)

	resp := &Response{
		GeneratedAt:    now,
		TotalBookings:  len(confirmed),
		TotalRevenue:   reporting.TotalRevenue(confirmed),
		OccupancyRate:  reporting.OverallOccupancyRate(occupancy),
		Occupancy:      occupancy,
		TodayRevenue:   reporting.RevenueByLot(lots, createdToday),
		WeeklyTrend:    reporting.WeeklyBookingCounts(confirmed, now),
		RecentBookings: enrich(headOf(recent, RecentBookingsCount), lots, users),
	}

	uc.logger.Info("GetDashboard: %d confirmed of %d recent, revenue=%.2f, occupancy=%d%%",
		resp.TotalBookings, len(recent), resp.TotalRevenue, resp.OccupancyRate)
	return resp, nil
}

func withStatus(bookings []*domain.Booking, status domain.BookingStatus) []*domain.Booking {
	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == status {
			result = append(result, b)
		}
	}
	return result
}

func headOf(bookings []*domain.Booking, n int) []*domain.Booking {
	if len(bookings) > n {
		return bookings[:n]
	}
	return bookings
}

func userIDs(bookings []*domain.Booking) []string {
	seen := make(map[string]struct{}, len(bookings))
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.UserID]; ok {
			continue
		}
		seen[b.UserID] = struct{}{}
		ids = append(ids, b.UserID)
	}
	return ids
}

func enrich(bookings []*domain.Booking, lots []*domain.ParkingLot, users map[string]*domain.User) []RecentBooking {
	lotNames := make(map[string]string, len(lots))
	for _, lot := range lots {
		lotNames[lot.ID] = lot.Name
	}

	result := make([]RecentBooking, 0, len(bookings))
	for _, b := range bookings {
		item := RecentBooking{
			BookingID: b.ID,
			UserID:    b.UserID,
			UserName:  domain.UnknownUserName,
			LotID:     b.LotID,
			LotName:   domain.UnknownLotName,
			SpotID:    b.SpotID,
			Status:    b.Status,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			TotalCost: b.TotalCost,
			CreatedAt: b.CreatedAt,
		}
		if u, ok := users[b.UserID]; ok {
			item.UserName = u.Name
			item.UserEmail = u.Email
		}
		if name, ok := lotNames[b.LotID]; ok {
			item.LotName = name
		}
		result = append(result, item)
	}
	return result
}
