package availability

import (
	"fmt"
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
)

// Overlaps checks half-open intervals [a0, a1) and [b0, b1)
func Overlaps(a0, a1, b0, b1 time.Time) bool {
	return a0.Before(b1) && b0.Before(a1)
}

// BlockedSpotIDs returns ids of spots held or booked for an interval overlapping the window.
// Expired holds and inactive bookings are ignored.
func BlockedSpotIDs(bookings []*domain.Booking, windowStart, windowEnd, now time.Time) map[string]struct{} {
	blocked := make(map[string]struct{})
	for _, b := range bookings {
		if !b.BlocksSpot(now) {
			continue
		}
		if Overlaps(b.StartTime, b.EndTime, windowStart, windowEnd) {
			blocked[b.SpotID] = struct{}{}
		}
	}
	return blocked
}

// AvailableSpots returns the lot's spots, in lot order, that are free for [windowStart, windowEnd)
func AvailableSpots(lot *domain.ParkingLot, bookings []*domain.Booking, windowStart, windowEnd, now time.Time) ([]domain.Spot, error) {
	if !windowEnd.After(windowStart) {
		return nil, fmt.Errorf("%w: end %s is not after start %s", domain.ErrInvalidWindow,
			windowEnd.Format(time.RFC3339), windowStart.Format(time.RFC3339))
	}

	blocked := BlockedSpotIDs(bookings, windowStart, windowEnd, now)

	free := make([]domain.Spot, 0, len(lot.Spots))
	for _, s := range lot.Spots {
		if _, taken := blocked[s.ID]; !taken {
			free = append(free, s)
		}
	}
	return free, nil
}

// IsSpotFree reports whether spotID has no blocking booking overlapping the window
func IsSpotFree(spotID string, bookings []*domain.Booking, windowStart, windowEnd, now time.Time) bool {
	_, taken := BlockedSpotIDs(bookings, windowStart, windowEnd, now)[spotID]
	return !taken
}
