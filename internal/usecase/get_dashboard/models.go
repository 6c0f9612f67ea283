package get_dashboard

import (
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
)

const (
	// DefaultRecentLimit сколько последних бронирований учитывается в сводке
	DefaultRecentLimit = 50

	// RecentBookingsCount сколько бронирований показывается в ленте
	RecentBookingsCount = 5
)

// RecentBooking бронирование из ленты с данными пользователя и лота
type RecentBooking struct {
	BookingID string
	UserID    string
	UserName  string
	UserEmail string
	LotID     string
	LotName   string
	SpotID    string
	Status    domain.BookingStatus
	StartTime time.Time
	EndTime   time.Time
	TotalCost float64
	CreatedAt time.Time
}

// Response сводка для панели администратора
type Response struct {
	GeneratedAt    time.Time
	TotalBookings  int     // подтвержденные среди последних N
	TotalRevenue   float64 // выручка подтвержденных среди последних N
	OccupancyRate  int
	Occupancy      []domain.LotOccupancy
	TodayRevenue   []domain.LotRevenue
	WeeklyTrend    []domain.DayCount
	RecentBookings []RecentBooking
}
