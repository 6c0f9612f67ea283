package domain

import "time"

// Booking lifecycle constants
const (
	HoldDuration       = 5 * time.Minute
	OvertimeMultiplier = 1.5
)

// Defaults for lot management
const (
	DefaultHourlyRate = 2.5
	MaxSpotsPerLot    = 1000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, которые занимают место
// Используются при выборке бронирований для проверки доступности
var ActiveStatuses = []BookingStatus{
	StatusTemporary,
	StatusConfirmed,
}

// UnknownUserName и UnknownLotName подставляются, если связанная запись не найдена
const (
	UnknownUserName = "Unknown User"
	UnknownLotName  = "Unknown Lot"
)
