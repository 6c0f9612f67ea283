package get_dashboard

import (
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
	getDashboard "github.com/Raorakshith/smartparking/internal/usecase/get_dashboard"
)

type OccupancyResponse struct {
	LotID         string `json:"lotId"`
	LotName       string `json:"lotName"`
	OccupiedSpots int    `json:"occupiedSpots"`
	TotalSpots    int    `json:"totalSpots"`
	OccupancyRate int    `json:"occupancyRate"`
}

type LotRevenueResponse struct {
	LotID         string  `json:"lotId"`
	LotName       string  `json:"lotName"`
	Revenue       float64 `json:"revenue"`
	BookingsCount int     `json:"bookingsCount"`
}

type DayCountResponse struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type RecentBookingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail,omitempty"`
	LotID     string    `json:"lotId"`
	LotName   string    `json:"lotName"`
	SpotID    string    `json:"spotId"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	TotalCost float64   `json:"totalCost"`
	CreatedAt time.Time `json:"createdAt"`
}

// DashboardResponse HTTP response model
type DashboardResponse struct {
	GeneratedAt    time.Time               `json:"generatedAt"`
	TotalBookings  int                     `json:"totalBookings"`
	TotalRevenue   float64                 `json:"totalRevenue"`
	OccupancyRate  int                     `json:"occupancyRate"`
	Occupancy      []OccupancyResponse     `json:"occupancy"`
	TodayRevenue   []LotRevenueResponse    `json:"todayRevenue"`
	WeeklyTrend    []DayCountResponse      `json:"weeklyTrend"`
	RecentBookings []RecentBookingResponse `json:"recentBookings"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDashboard.Response) *DashboardResponse {
	out := &DashboardResponse{
		GeneratedAt:    resp.GeneratedAt,
		TotalBookings:  resp.TotalBookings,
		TotalRevenue:   resp.TotalRevenue,
		OccupancyRate:  resp.OccupancyRate,
		Occupancy:      make([]OccupancyResponse, 0, len(resp.Occupancy)),
		TodayRevenue:   make([]LotRevenueResponse, 0, len(resp.TodayRevenue)),
		WeeklyTrend:    make([]DayCountResponse, 0, len(resp.WeeklyTrend)),
		RecentBookings: make([]RecentBookingResponse, 0, len(resp.RecentBookings)),
	}

	for _, o := range resp.Occupancy {
		out.Occupancy = append(out.Occupancy, OccupancyResponse(o))
	}
	for _, r := range resp.TodayRevenue {
		out.TodayRevenue = append(out.TodayRevenue, LotRevenueResponse(r))
	}
	for _, d := range resp.WeeklyTrend {
		out.WeeklyTrend = append(out.WeeklyTrend, DayCountResponse{
			Date:  d.Date.Format(domain.DateFormat),
			Label: d.Label,
			Count: d.Count,
		})
	}
	for _, b := range resp.RecentBookings {
		out.RecentBookings = append(out.RecentBookings, RecentBookingResponse{
			ID:        b.BookingID,
			UserID:    b.UserID,
			UserName:  b.UserName,
			UserEmail: b.UserEmail,
			LotID:     b.LotID,
			LotName:   b.LotName,
			SpotID:    b.SpotID,
			Status:    string(b.Status),
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			TotalCost: b.TotalCost,
			CreatedAt: b.CreatedAt,
		})
	}

	return out
}
