package get_dashboard

import (
	"context"
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// LotRepository интерфейс репозитория лотов
type LotRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.ParkingLot, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
