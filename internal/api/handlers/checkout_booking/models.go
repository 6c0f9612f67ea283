package checkout_booking

import (
	"time"

	checkoutBooking "github.com/Raorakshith/smartparking/internal/usecase/checkout_booking"
)

// CheckoutResponse HTTP response model
type CheckoutResponse struct {
	BookingID           string  `json:"bookingId"`
	Status              string  `json:"status"`
	CheckoutTime        string  `json:"checkoutTime"`
	ActualDurationHours float64 `json:"actualDurationHours"`
	OvertimeHours       float64 `json:"overtimeHours"`
	AdditionalCost      float64 `json:"additionalCost"`
	FinalCost           float64 `json:"finalCost"`
	Late                bool    `json:"late"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkoutBooking.Response) *CheckoutResponse {
	return &CheckoutResponse{
		BookingID:           resp.BookingID,
		Status:              resp.Status,
		CheckoutTime:        resp.CheckoutTime.Format(time.RFC3339),
		ActualDurationHours: resp.ActualDurationHours,
		OvertimeHours:       resp.OvertimeHours,
		AdditionalCost:      resp.AdditionalCost,
		FinalCost:           resp.FinalCost,
		Late:                resp.Late,
	}
}
