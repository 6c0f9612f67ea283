package get_available_spots

import (
	"context"
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// LotRepository интерфейс репозитория парковочных лотов
type LotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ParkingLot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
