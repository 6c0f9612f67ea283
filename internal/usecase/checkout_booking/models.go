package checkout_booking

import "time"

// Request модель запроса на выезд
type Request struct {
	BookingID   string
	RequesterID string // ID пользователя из токена
	IsAdmin     bool
}

// Response модель ответа с расчетом
type Response struct {
	BookingID           string
	Status              string
	CheckoutTime        time.Time
	ActualDurationHours float64
	OvertimeHours       float64
	AdditionalCost      float64
	FinalCost           float64
	Late                bool
}
