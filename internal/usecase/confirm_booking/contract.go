package confirm_booking

import (
	"context"
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	AddBooking(ctx context.Context, userID, bookingID string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventRecorder счетчики событий и выручки
type EventRecorder interface {
	RecordBookingEvent(event string)
	AddRevenue(amount float64)
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
