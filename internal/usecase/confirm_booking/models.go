package confirm_booking

import (
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
)

// Request модель запроса на подтверждение удержания
type Request struct {
	BookingID string
	Payment   domain.PaymentDetails // Сохраняется как есть, подлинность не проверяется
}

// Response модель ответа с подтвержденным бронированием
type Response struct {
	BookingID   string
	UserID      string
	Status      string
	Payment     domain.PaymentDetails
	ConfirmedAt time.Time
}
