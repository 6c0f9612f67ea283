package confirm_booking

import (
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
	confirmBooking "github.com/Raorakshith/smartparking/internal/usecase/confirm_booking"
)

// ConfirmBookingRequest HTTP request model, данные платежного провайдера
type ConfirmBookingRequest struct {
	PaymentDetails domain.PaymentDetails `json:"paymentDetails"`
}

// ConfirmBookingResponse HTTP response model
type ConfirmBookingResponse struct {
	BookingID      string                `json:"bookingId"`
	UserID         string                `json:"userId"`
	Status         string                `json:"status"`
	PaymentDetails domain.PaymentDetails `json:"paymentDetails"`
	ConfirmedAt    string                `json:"confirmedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmBookingRequest) ToUseCaseRequest(bookingID string) *confirmBooking.Request {
	return &confirmBooking.Request{
		BookingID: bookingID,
		Payment:   r.PaymentDetails,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *ConfirmBookingResponse {
	return &ConfirmBookingResponse{
		BookingID:      resp.BookingID,
		UserID:         resp.UserID,
		Status:         resp.Status,
		PaymentDetails: resp.Payment,
		ConfirmedAt:    resp.ConfirmedAt.Format(time.RFC3339),
	}
}
