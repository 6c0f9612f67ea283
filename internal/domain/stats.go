package domain

import "time"

// LotOccupancy occupancy of one lot at the query instant
type LotOccupancy struct {
	LotID         string
	LotName       string
	OccupiedSpots int
	TotalSpots    int
	OccupancyRate int // percent, 0-100
}

// DayCount number of bookings created on one calendar day
type DayCount struct {
	Date  time.Time
	Label string // "Mon", "Tue", ...
	Count int
}

// LotRevenue revenue of confirmed bookings grouped by lot
type LotRevenue struct {
	LotID         string
	LotName       string
	Revenue       float64
	BookingsCount int
}

// DailyRevenue revenue of confirmed bookings grouped by booking date
type DailyRevenue struct {
	Date          time.Time
	Revenue       float64
	BookingsCount int
}
