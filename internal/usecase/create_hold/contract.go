package create_hold

import (
	"context"
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	ExpireHolds(ctx context.Context, now time.Time, lotID *string) ([]*domain.Booking, error)
}

// LotRepository интерфейс репозитория парковочных лотов
type LotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ParkingLot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventRecorder счетчик событий жизненного цикла бронирований
type EventRecorder interface {
	RecordBookingEvent(event string)
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
