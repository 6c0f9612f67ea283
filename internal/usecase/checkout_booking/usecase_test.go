package checkout_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Raorakshith/smartparking/internal/domain"
	bookingRepo "github.com/Raorakshith/smartparking/internal/infra/storage/booking"
	"github.com/Raorakshith/smartparking/internal/mocks"
	"github.com/Raorakshith/smartparking/pkg/clock"
	"github.com/Raorakshith/smartparking/pkg/metrics"
)

func at(h, m int) time.Time {
	return time.Date(2024, 3, 15, h, m, 0, 0, time.UTC)
}

// 10:00-12:00 по 2.00 в час, котировка 4.00
func confirmed() *domain.Booking {
	return &domain.Booking{
		ID:            "b-1",
		UserID:        "user-1",
		LotID:         "lot-1",
		SpotID:        "A1",
		Status:        domain.StatusConfirmed,
		StartTime:     at(10, 0),
		EndTime:       at(12, 0),
		HourlyRate:    2,
		DurationHours: 2,
		TotalCost:     4,
	}
}

func newUseCase(t *testing.T, now time.Time) (*UseCase, *mocks.BookingRepository, *mocks.Events) {
	bookings := mocks.NewBookingRepository(t)
	events := &mocks.Events{}
	uc := NewUseCase(bookings, &mocks.TxManager{}, events, clock.Fixed{At: now}, &mocks.Logger{})
	return uc, bookings, events
}

func TestExecute_Settlement(t *testing.T) {
	tests := []struct {
		name           string
		now            time.Time
		wantActual     float64
		wantAdditional float64
		wantFinal      float64
		wantLate       bool
	}{
		{name: "early", now: at(11, 0), wantActual: 1, wantFinal: 2},
		{name: "on time", now: at(12, 0), wantActual: 2, wantFinal: 4},
		// Час сверх окна: 2.00 × 1 × 1.5 = 3.00
		{name: "late", now: at(13, 0), wantActual: 2, wantAdditional: 3, wantFinal: 7, wantLate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, bookings, events := newUseCase(t, tt.now)
			bookings.On("GetByID", mock.Anything, "b-1").Return(confirmed(), nil)
			bookings.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
				return b.Status == domain.StatusCompleted &&
					b.ActualEndTime.Time.Equal(tt.now) &&
					b.FinalCost.Valid
			}), domain.StatusConfirmed).Return(nil)

			resp, err := uc.Execute(context.Background(), &Request{BookingID: "b-1", RequesterID: "user-1"})
			require.NoError(t, err)

			assert.Equal(t, string(domain.StatusCompleted), resp.Status)
			assert.InDelta(t, tt.wantActual, resp.ActualDurationHours, 1e-9)
			assert.InDelta(t, tt.wantAdditional, resp.AdditionalCost, 1e-9)
			assert.InDelta(t, tt.wantFinal, resp.FinalCost, 1e-9)
			assert.Equal(t, tt.wantLate, resp.Late)
			assert.Equal(t, []string{metrics.EventCheckedOut}, events.Recorded())
		})
	}
}

func TestExecute_AdminMayCheckOutAnyBooking(t *testing.T) {
	uc, bookings, _ := newUseCase(t, at(11, 0))
	bookings.On("GetByID", mock.Anything, "b-1").Return(confirmed(), nil)
	bookings.On("UpdateStatus", mock.Anything, mock.Anything, domain.StatusConfirmed).Return(nil)

	_, err := uc.Execute(context.Background(), &Request{BookingID: "b-1", RequesterID: "admin-1", IsAdmin: true})
	assert.NoError(t, err)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		uc, bookings, _ := newUseCase(t, at(11, 0))
		bookings.On("GetByID", mock.Anything, "b-1").Return(nil, bookingRepo.ErrBookingNotFound)

		_, err := uc.Execute(context.Background(), &Request{BookingID: "b-1", RequesterID: "user-1"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("stranger", func(t *testing.T) {
		uc, bookings, _ := newUseCase(t, at(11, 0))
		bookings.On("GetByID", mock.Anything, "b-1").Return(confirmed(), nil)

		_, err := uc.Execute(context.Background(), &Request{BookingID: "b-1", RequesterID: "user-2"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("already completed", func(t *testing.T) {
		uc, bookings, events := newUseCase(t, at(11, 0))
		b := confirmed()
		b.Status = domain.StatusCompleted
		bookings.On("GetByID", mock.Anything, "b-1").Return(b, nil)

		_, err := uc.Execute(context.Background(), &Request{BookingID: "b-1", RequesterID: "user-1"})
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		assert.Empty(t, events.Recorded())
	})

	t.Run("missing requester", func(t *testing.T) {
		uc, _, _ := newUseCase(t, at(11, 0))

		_, err := uc.Execute(context.Background(), &Request{BookingID: "b-1"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
