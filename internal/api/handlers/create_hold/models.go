package create_hold

import (
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
	createHold "github.com/Raorakshith/smartparking/internal/usecase/create_hold"
)

// CreateHoldRequest HTTP request model
type CreateHoldRequest struct {
	LotID     string `json:"lotId"`
	SpotID    string `json:"spotId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// HoldResponse HTTP response model
type HoldResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	LotID         string  `json:"lotId"`
	SpotID        string  `json:"spotId"`
	BookingDate   string  `json:"bookingDate"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	HourlyRate    float64 `json:"hourlyRate"`
	DurationHours float64 `json:"durationHours"`
	TotalCost     float64 `json:"totalCost"`
	ExpiresAt     string  `json:"expiresAt"`
	CreatedAt     string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Время "HH:MM" проверяет use case
func (r *CreateHoldRequest) ToUseCaseRequest(userID string) (*createHold.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createHold.Request{
		UserID:    userID,
		LotID:     r.LotID,
		SpotID:    r.SpotID,
		Date:      date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createHold.Response) *HoldResponse {
	return &HoldResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		LotID:         resp.LotID,
		SpotID:        resp.SpotID,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.Format(time.RFC3339),
		EndTime:       resp.EndTime.Format(time.RFC3339),
		Status:        resp.Status,
		HourlyRate:    resp.HourlyRate,
		DurationHours: resp.DurationHours,
		TotalCost:     resp.TotalCost,
		ExpiresAt:     resp.ExpiresAt.Format(time.RFC3339),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
