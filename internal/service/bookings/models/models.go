package models

import (
	"time"

	"gopkg.in/guregu/null.v4"

	"github.com/Raorakshith/smartparking/internal/domain"
)

// StatusAll значение фильтра статуса "без ограничения"
const StatusAll = "all"

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID      string `json:"userId"`
	RequesterID string `json:"-"`
	IsAdmin     bool   `json:"-"`
	Status      string `json:"status,omitempty"` // "all" или пусто - все статусы
}

// ListBookingsRequest запрос администратора на список бронирований
type ListBookingsRequest struct {
	Status             string     `json:"status,omitempty"`
	UserID             *string    `json:"userId,omitempty"`
	LotID              *string    `json:"lotId,omitempty"`
	From               *time.Time `json:"from,omitempty"` // booking_date >= From
	To                 *time.Time `json:"to,omitempty"`   // booking_date <= To
	Limit              int        `json:"limit,omitempty"`
	IncludeUserDetails bool       `json:"includeUserDetails,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		UserID:      r.UserID,
		LotID:       r.LotID,
		DateFrom:    r.From,
		DateTo:      r.To,
		NewestFirst: true,
		Limit:       r.Limit,
	}

	statuses, err := ParseStatusFilter(r.Status)
	if err != nil {
		return filter, err
	}
	filter.Statuses = statuses
	return filter, nil
}

// ParseStatusFilter конвертирует фильтр статуса, "all" и пустая строка означают все статусы
func ParseStatusFilter(status string) ([]domain.BookingStatus, error) {
	if status == "" || status == StatusAll {
		return nil, nil
	}
	s, err := domain.ParseBookingStatus(status)
	if err != nil {
		return nil, err
	}
	return []domain.BookingStatus{s}, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	LotID       string    `json:"lotId"`
	SpotID      string    `json:"spotId"`
	BookingDate string    `json:"bookingDate"` // "2025-10-15"
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Status      string    `json:"status"`

	HourlyRate    float64 `json:"hourlyRate"`
	DurationHours float64 `json:"durationHours"`
	TotalCost     float64 `json:"totalCost"`

	ExpiresAt      null.Time              `json:"expiresAt"`
	PaymentDetails *domain.PaymentDetails `json:"paymentDetails,omitempty"`

	ActualEndTime  null.Time  `json:"actualEndTime"`
	ActualDuration null.Float `json:"actualDuration"`
	AdditionalCost null.Float `json:"additionalCost"`
	FinalCost      null.Float `json:"finalCost"`
	CancelledAt    null.Time  `json:"cancelledAt"`

	// Заполняются только при includeUserDetails
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
	LotName   string `json:"lotName,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// QRCodeResponse данные для QR-кода бронирования
// Payload - JSON строка {"bookingId","userId","timestamp"}
type QRCodeResponse struct {
	BookingID string `json:"bookingId"`
	Payload   string `json:"payload"`
}

// QRPayload содержимое QR-кода
type QRPayload struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	Timestamp string `json:"timestamp"` // RFC 3339
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		LotID:          b.LotID,
		SpotID:         b.SpotID,
		BookingDate:    b.BookingDate.Format(domain.DateFormat),
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		Status:         string(b.Status),
		HourlyRate:     b.HourlyRate,
		DurationHours:  b.DurationHours,
		TotalCost:      b.TotalCost,
		ExpiresAt:      b.ExpiresAt,
		PaymentDetails: b.Payment,
		ActualEndTime:  b.ActualEndTime,
		ActualDuration: b.ActualDuration,
		AdditionalCost: b.AdditionalCost,
		FinalCost:      b.FinalCost,
		CancelledAt:    b.CancelledAt,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	resp.Total = len(resp.Bookings)

	return resp
}
