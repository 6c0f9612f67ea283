package reporting

import (
	"math"
	"sort"
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/pkg/clock"
)

// WeekDays размер окна недельной статистики
const WeekDays = 7

// Percent returns round(part / total × 100), or 0 when total is 0
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// OccupancyByLot counts distinct spots with a confirmed booking among bookingsToday, per lot
func OccupancyByLot(lots []*domain.ParkingLot, bookingsToday []*domain.Booking) []domain.LotOccupancy {
	occupied := make(map[string]map[string]struct{}, len(lots))
	for _, b := range bookingsToday {
		if b.Status != domain.StatusConfirmed {
			continue
		}
		spots, ok := occupied[b.LotID]
		if !ok {
			spots = make(map[string]struct{})
			occupied[b.LotID] = spots
		}
		spots[b.SpotID] = struct{}{}
	}

	result := make([]domain.LotOccupancy, 0, len(lots))
	for _, lot := range lots {
		count := len(occupied[lot.ID])
		result = append(result, domain.LotOccupancy{
			LotID:         lot.ID,
			LotName:       lot.Name,
			OccupiedSpots: count,
			TotalSpots:    lot.TotalSpots,
			OccupancyRate: Percent(count, lot.TotalSpots),
		})
	}
	return result
}

// OverallOccupancyRate sums occupied and total spots across lots before rounding
func OverallOccupancyRate(occupancy []domain.LotOccupancy) int {
	var occupied, total int
	for _, o := range occupancy {
		occupied += o.OccupiedSpots
		total += o.TotalSpots
	}
	return Percent(occupied, total)
}

// TotalRevenue sums payment amounts of confirmed bookings
func TotalRevenue(bookings []*domain.Booking) float64 {
	var total float64
	for _, b := range bookings {
		if b.Status == domain.StatusConfirmed {
			total += b.PaymentAmount()
		}
	}
	return total
}

// CountByStatus counts bookings with the given status
func CountByStatus(bookings []*domain.Booking, status domain.BookingStatus) int {
	n := 0
	for _, b := range bookings {
		if b.Status == status {
			n++
		}
	}
	return n
}

// WeeklyBookingCounts buckets bookings by creation day over the 7 calendar days ending today,
// oldest first. Day boundaries are taken in today's location.
func WeeklyBookingCounts(bookings []*domain.Booking, today time.Time) []domain.DayCount {
	loc := today.Location()
	end := clock.StartOfDay(today).AddDate(0, 0, 1)
	first := end.AddDate(0, 0, -WeekDays)

	series := make([]domain.DayCount, WeekDays)
	for i := range series {
		d := first.AddDate(0, 0, i)
		series[i] = domain.DayCount{Date: d, Label: d.Format("Mon")}
	}

	for _, b := range bookings {
		created := b.CreatedAt.In(loc)
		if created.Before(first) || !created.Before(end) {
			continue
		}
		day := clock.StartOfDay(created)
		for i := range series {
			if series[i].Date.Equal(day) {
				series[i].Count++
				break
			}
		}
	}
	return series
}

// RevenueByLot groups confirmed payments by lot, in lot order.
// Lots without confirmed bookings are reported with zero revenue.
func RevenueByLot(lots []*domain.ParkingLot, bookings []*domain.Booking) []domain.LotRevenue {
	index := make(map[string]int, len(lots))
	result := make([]domain.LotRevenue, 0, len(lots))
	for _, lot := range lots {
		index[lot.ID] = len(result)
		result = append(result, domain.LotRevenue{LotID: lot.ID, LotName: lot.Name})
	}

	for _, b := range bookings {
		if b.Status != domain.StatusConfirmed {
			continue
		}
		i, ok := index[b.LotID]
		if !ok {
			index[b.LotID] = len(result)
			i = len(result)
			result = append(result, domain.LotRevenue{LotID: b.LotID, LotName: domain.UnknownLotName})
		}
		result[i].Revenue += b.PaymentAmount()
		result[i].BookingsCount++
	}
	return result
}

// RevenueByDate groups confirmed payments by booking date, sorted ascending
func RevenueByDate(bookings []*domain.Booking) []domain.DailyRevenue {
	byDate := make(map[string]*domain.DailyRevenue)
	for _, b := range bookings {
		if b.Status != domain.StatusConfirmed {
			continue
		}
		key := b.BookingDate.Format(domain.DateFormat)
		entry, ok := byDate[key]
		if !ok {
			entry = &domain.DailyRevenue{Date: clock.StartOfDay(b.BookingDate)}
			byDate[key] = entry
		}
		entry.Revenue += b.PaymentAmount()
		entry.BookingsCount++
	}

	result := make([]domain.DailyRevenue, 0, len(byDate))
	for _, entry := range byDate {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}
