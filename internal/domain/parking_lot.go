package domain

import (
	"fmt"
	"strings"
	"time"
)

// Spot an individually bookable space, identified uniquely within its lot
type Spot struct {
	ID         string
	Category   string // "Premium", "Regular", "Handicap", ...
	Accessible bool
}

// ParkingLot represents a campus parking lot with its ordered spot list
type ParkingLot struct {
	ID         string
	Name       string
	Location   string
	Latitude   float64
	Longitude  float64
	HourlyRate float64
	TotalSpots int
	Spots      []Spot
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FindSpot returns the spot with the given id
func (l *ParkingLot) FindSpot(spotID string) (Spot, bool) {
	for _, s := range l.Spots {
		if s.ID == spotID {
			return s, true
		}
	}
	return Spot{}, false
}

// Validate проверяет инварианты лота перед сохранением
func (l *ParkingLot) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: lot name is required", ErrInvalidInput)
	}
	if l.HourlyRate <= 0 {
		return fmt.Errorf("%w: lot %q has rate %.2f", ErrInvalidRate, l.Name, l.HourlyRate)
	}
	if l.Latitude < -90 || l.Latitude > 90 || l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	if l.TotalSpots < 0 || l.TotalSpots > MaxSpotsPerLot {
		return fmt.Errorf("%w: total spots must be within 0..%d", ErrInvalidInput, MaxSpotsPerLot)
	}
	if len(l.Spots) > 0 && l.TotalSpots != len(l.Spots) {
		return fmt.Errorf("%w: total spots %d does not match %d listed spots", ErrInvalidInput, l.TotalSpots, len(l.Spots))
	}

	seen := make(map[string]struct{}, len(l.Spots))
	for _, s := range l.Spots {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("%w: spot id is required", ErrInvalidInput)
		}
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("%w: duplicate spot id %q", ErrInvalidInput, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
