package get_booking

import (
	"context"

	"github.com/Raorakshith/smartparking/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id, requesterID string, isAdmin bool) (*models.BookingResponse, error)
	QRCode(ctx context.Context, bookingID, requesterID string, isAdmin bool) (*models.QRCodeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
