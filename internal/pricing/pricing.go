// Package pricing converts clock windows into instants and computes booking costs.
package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/pkg/types"
)

// NormalizeInterval combines a calendar date with two HH:MM clocks into instants on that date.
// It does not check that start precedes end.
func NormalizeInterval(date time.Time, startClock, endClock string) (time.Time, time.Time, error) {
	start, err := clockOnDate(date, startClock)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := clockOnDate(date, endClock)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func clockOnDate(date time.Time, clock string) (time.Time, error) {
	ts, err := types.NewTimeStringFromString(clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidTimeFormat, err)
	}
	instant, err := ts.OnDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidTimeFormat, err)
	}
	return instant, nil
}

// Hours returns the length of [start, end) in hours
func Hours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// BaseCost = hourlyRate × hours(end - start), unrounded
func BaseCost(hourlyRate float64, start, end time.Time) (float64, error) {
	if hourlyRate <= 0 {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidRate, hourlyRate)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("%w: end %s before start %s", domain.ErrInvalidWindow,
			end.Format(domain.TimeFormat), start.Format(domain.TimeFormat))
	}
	return hourlyRate * Hours(start, end), nil
}

// OvertimeCost = hourlyRate × overtimeHours × 1.5
func OvertimeCost(hourlyRate, overtimeHours float64) float64 {
	return hourlyRate * overtimeHours * domain.OvertimeMultiplier
}

// RoundToHalfHour rounds up to the next half hour with a minimum of 0.5
func RoundToHalfHour(hours float64) float64 {
	return math.Max(math.Ceil(hours*2)/2, 0.5)
}

// Estimate returns a price preview billed in half-hour steps (minimum half an hour).
// The stored quote of a hold is always BaseCost, not this estimate.
func Estimate(hourlyRate float64, start, end time.Time) (hours float64, cost float64, err error) {
	if hourlyRate <= 0 {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrInvalidRate, hourlyRate)
	}
	hours = RoundToHalfHour(Hours(start, end))
	return hours, hours * hourlyRate, nil
}

// round2 rounds to 2 decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
