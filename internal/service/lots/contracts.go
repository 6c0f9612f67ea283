package lots

import (
	"context"

	"github.com/Raorakshith/smartparking/internal/domain"
)

// LotRepository интерфейс репозитория лотов
type LotRepository interface {
	Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error)
	GetByID(ctx context.Context, id string) (*domain.ParkingLot, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.ParkingLot, error)
	Update(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ExistsByLotAndStatus(ctx context.Context, lotID string, status domain.BookingStatus) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
