package get_revenue_report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/internal/mocks"
	"github.com/Raorakshith/smartparking/pkg/clock"
)

var testNow = time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

func date(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func confirmed(lotID string, d int, amount float64) *domain.Booking {
	return &domain.Booking{
		LotID:       lotID,
		BookingDate: date(d),
		Status:      domain.StatusConfirmed,
		Payment:     &domain.PaymentDetails{Amount: amount},
	}
}

func TestExecute_AggregatesRevenue(t *testing.T) {
	bookings := mocks.NewBookingRepository(t)
	lots := mocks.NewLotRepository(t)
	uc := NewUseCase(bookings, lots, &mocks.TxManager{}, clock.Fixed{At: testNow}, &mocks.Logger{})

	bookings.On("GetByFilter", mock.Anything, mock.MatchedBy(func(f domain.BookingFilter) bool {
		return len(f.Statuses) == 1 && f.Statuses[0] == domain.StatusConfirmed &&
			f.DateFrom.Equal(date(1)) && f.DateTo.Equal(date(15))
	})).Return([]*domain.Booking{
		confirmed("lot-1", 3, 4),
		confirmed("lot-2", 1, 2.5),
		confirmed("lot-1", 3, 6),
	}, nil)
	lots.On("List", mock.Anything, false).Return([]*domain.ParkingLot{
		{ID: "lot-1", Name: "North"},
		{ID: "lot-2", Name: "South"},
		{ID: "lot-3", Name: "East"},
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{From: date(1), To: date(15)})
	require.NoError(t, err)

	assert.InDelta(t, 12.5, resp.TotalRevenue, 1e-9)
	assert.Equal(t, 3, resp.BookingsCount)

	require.Len(t, resp.ByLot, 3)
	assert.InDelta(t, 10.0, resp.ByLot[0].Revenue, 1e-9)
	assert.Equal(t, 2, resp.ByLot[0].BookingsCount)
	assert.Zero(t, resp.ByLot[2].Revenue)

	require.Len(t, resp.ByDate, 2)
	assert.Equal(t, date(1), resp.ByDate[0].Date)
	assert.InDelta(t, 10.0, resp.ByDate[1].Revenue, 1e-9)
}

func TestExecute_InvalidRange(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{name: "from after to", req: Request{From: date(10), To: date(9)}},
		{name: "missing to", req: Request{From: date(10)}},
		{name: "too long", req: Request{From: date(1), To: date(1).AddDate(2, 0, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(mocks.NewBookingRepository(t), mocks.NewLotRepository(t),
				&mocks.TxManager{}, clock.Fixed{At: testNow}, &mocks.Logger{})

			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestExecute_SingleDayRange(t *testing.T) {
	bookings := mocks.NewBookingRepository(t)
	lots := mocks.NewLotRepository(t)
	uc := NewUseCase(bookings, lots, &mocks.TxManager{}, clock.Fixed{At: testNow}, &mocks.Logger{})

	bookings.On("GetByFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	lots.On("List", mock.Anything, false).Return([]*domain.ParkingLot{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{From: date(5), To: date(5)})
	require.NoError(t, err)
	assert.Zero(t, resp.TotalRevenue)
	assert.Empty(t, resp.ByDate)
}
