package bookings

import (
	"context"
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error
	ExpireHolds(ctx context.Context, now time.Time, lotID *string) ([]*domain.Booking, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
}

// LotRepository интерфейс репозитория лотов
type LotRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.ParkingLot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventRecorder счетчики событий жизненного цикла бронирований
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
