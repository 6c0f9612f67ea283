package get_available_spots

import (
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
	getAvailableSpots "github.com/Raorakshith/smartparking/internal/usecase/get_available_spots"
)

// SpotResponse свободное место
type SpotResponse struct {
	ID         string `json:"id"`
	Category   string `json:"category,omitempty"`
	Accessible bool   `json:"accessible"`
}

// AvailableSpotsResponse HTTP response model
type AvailableSpotsResponse struct {
	LotID          string         `json:"lotId"`
	LotName        string         `json:"lotName"`
	Date           string         `json:"date"`
	StartTime      string         `json:"startTime"`
	EndTime        string         `json:"endTime"`
	AvailableSpots []SpotResponse `json:"availableSpots"`
	AvailableCount int            `json:"availableCount"`
	TotalSpots     int            `json:"totalSpots"`
	HourlyRate     float64        `json:"hourlyRate"`
	EstimatedHours float64        `json:"estimatedHours"`
	EstimatedCost  float64        `json:"estimatedCost"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(lotID, dateStr, start, end string) (*getAvailableSpots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSpots.Request{
		LotID:     lotID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSpots.Response) *AvailableSpotsResponse {
	spots := make([]SpotResponse, 0, len(resp.Spots))
	for _, s := range resp.Spots {
		spots = append(spots, SpotResponse{ID: s.ID, Category: s.Category, Accessible: s.Accessible})
	}

	return &AvailableSpotsResponse{
		LotID:          resp.LotID,
		LotName:        resp.LotName,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.WindowStart.Format(time.RFC3339),
		EndTime:        resp.WindowEnd.Format(time.RFC3339),
		AvailableSpots: spots,
		AvailableCount: len(spots),
		TotalSpots:     resp.TotalSpots,
		HourlyRate:     resp.HourlyRate,
		EstimatedHours: resp.EstimatedHours,
		EstimatedCost:  resp.EstimatedCost,
	}
}
