package models

import (
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
)

// SpotDTO место на парковке
type SpotDTO struct {
	ID         string `json:"id"`
	Category   string `json:"category,omitempty"`
	Accessible bool   `json:"accessible"`
}

// LotRequest запрос на создание или замену лота
type LotRequest struct {
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	HourlyRate float64   `json:"hourlyRate"`           // 0 - тариф по умолчанию
	TotalSpots *int      `json:"totalSpots,omitempty"` // nil - по числу мест в списке
	Spots      []SpotDTO `json:"spots"`
	Active     *bool     `json:"active,omitempty"`
}

// ApplyTo переносит поля запроса в лот, подставляя значения по умолчанию
func (r *LotRequest) ApplyTo(lot *domain.ParkingLot) {
	lot.Name = r.Name
	lot.Location = r.Location
	lot.Latitude = r.Latitude
	lot.Longitude = r.Longitude

	lot.HourlyRate = r.HourlyRate
	if lot.HourlyRate == 0 {
		lot.HourlyRate = domain.DefaultHourlyRate
	}

	lot.Spots = make([]domain.Spot, 0, len(r.Spots))
	for _, s := range r.Spots {
		lot.Spots = append(lot.Spots, domain.Spot{ID: s.ID, Category: s.Category, Accessible: s.Accessible})
	}

	lot.TotalSpots = len(lot.Spots)
	if r.TotalSpots != nil {
		lot.TotalSpots = *r.TotalSpots
	}

	if r.Active != nil {
		lot.Active = *r.Active
	}
}

// LotResponse ответ с данными лота
type LotResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	HourlyRate float64   `json:"hourlyRate"`
	TotalSpots int       `json:"totalSpots"`
	Spots      []SpotDTO `json:"spots"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// LotListResponse ответ со списком лотов
type LotListResponse struct {
	Lots []LotResponse `json:"lots"`
}

// FromDomainLot конвертирует domain модель в DTO
func FromDomainLot(l *domain.ParkingLot) *LotResponse {
	if l == nil {
		return nil
	}

	spots := make([]SpotDTO, 0, len(l.Spots))
	for _, s := range l.Spots {
		spots = append(spots, SpotDTO{ID: s.ID, Category: s.Category, Accessible: s.Accessible})
	}

	return &LotResponse{
		ID:         l.ID,
		Name:       l.Name,
		Location:   l.Location,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
		HourlyRate: l.HourlyRate,
		TotalSpots: l.TotalSpots,
		Spots:      spots,
		Active:     l.Active,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// FromDomainLotList конвертирует список domain моделей в DTO
func FromDomainLotList(lots []*domain.ParkingLot) *LotListResponse {
	resp := &LotListResponse{Lots: make([]LotResponse, 0, len(lots))}
	for _, l := range lots {
		if lr := FromDomainLot(l); lr != nil {
			resp.Lots = append(resp.Lots, *lr)
		}
	}
	return resp
}
