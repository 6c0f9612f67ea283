// Package mocks содержит mock.Mock реализации репозиториев и инфраструктуры для тестов
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Raorakshith/smartparking/internal/domain"
)

type returnArg struct{}

// ReturnArg в Return означает "вернуть сущность, переданную в вызов"
var ReturnArg = returnArg{}

// BookingRepository мок репозитория бронирований
type BookingRepository struct {
	mock.Mock
}

// NewBookingRepository создает мок и проверяет ожидания по завершении теста
func NewBookingRepository(t *testing.T) *BookingRepository {
	m := &BookingRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create возвращает переданное бронирование, если в Return указан ReturnArg
func (m *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == ReturnArg {
		return booking, args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepository) GetByFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *BookingRepository) UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error {
	args := m.Called(ctx, booking, from)
	return args.Error(0)
}

func (m *BookingRepository) ExpireHolds(ctx context.Context, now time.Time, lotID *string) ([]*domain.Booking, error) {
	args := m.Called(ctx, now, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *BookingRepository) ExistsByLotAndStatus(ctx context.Context, lotID string, status domain.BookingStatus) (bool, error) {
	args := m.Called(ctx, lotID, status)
	return args.Bool(0), args.Error(1)
}

// LotRepository мок репозитория лотов
type LotRepository struct {
	mock.Mock
}

func NewLotRepository(t *testing.T) *LotRepository {
	m := &LotRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *LotRepository) Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	args := m.Called(ctx, lot)
	if args.Get(0) == ReturnArg {
		return lot, args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingLot), args.Error(1)
}

func (m *LotRepository) GetByID(ctx context.Context, id string) (*domain.ParkingLot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingLot), args.Error(1)
}

func (m *LotRepository) List(ctx context.Context, activeOnly bool) ([]*domain.ParkingLot, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ParkingLot), args.Error(1)
}

func (m *LotRepository) Update(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	args := m.Called(ctx, lot)
	if args.Get(0) == ReturnArg {
		return lot, args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingLot), args.Error(1)
}

func (m *LotRepository) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *LotRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// UserRepository мок репозитория пользователей
type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t *testing.T) *UserRepository {
	m := &UserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserRepository) Upsert(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == ReturnArg {
		return u, args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.User), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *UserRepository) AddBooking(ctx context.Context, userID, bookingID string) error {
	return m.Called(ctx, userID, bookingID).Error(0)
}

func (m *UserRepository) GetBookingIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
