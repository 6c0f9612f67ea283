package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"

	"github.com/Raorakshith/smartparking/internal/domain"
	bookingRepo "github.com/Raorakshith/smartparking/internal/infra/storage/booking"
	"github.com/Raorakshith/smartparking/internal/mocks"
	"github.com/Raorakshith/smartparking/internal/service/bookings/models"
	"github.com/Raorakshith/smartparking/pkg/clock"
	"github.com/Raorakshith/smartparking/pkg/metrics"
)

var testNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *Service
	bookings *mocks.BookingRepository
	users    *mocks.UserRepository
	lots     *mocks.LotRepository
	events   *mocks.Events
	logger   *mocks.Logger
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		bookings: mocks.NewBookingRepository(t),
		users:    mocks.NewUserRepository(t),
		lots:     mocks.NewLotRepository(t),
		events:   &mocks.Events{},
		logger:   &mocks.Logger{},
	}
	f.svc = NewService(f.bookings, f.users, f.lots, &mocks.TxManager{}, f.events, clock.Fixed{At: testNow}, f.logger)
	return f
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:          "b-1",
		UserID:      "user-1",
		LotID:       "lot-1",
		SpotID:      "A1",
		BookingDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		Status:      domain.StatusConfirmed,
		TotalCost:   4,
	}
}

func TestService_GetByID(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.On("GetByID", mock.Anything, "b-1").Return(confirmedBooking(), nil)

		resp, err := f.svc.GetByID(context.Background(), "b-1", "user-1", false)
		require.NoError(t, err)
		assert.Equal(t, "b-1", resp.ID)
		assert.Equal(t, "2024-03-15", resp.BookingDate)
	})

	t.Run("admin", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.On("GetByID", mock.Anything, "b-1").Return(confirmedBooking(), nil)

		_, err := f.svc.GetByID(context.Background(), "b-1", "admin-1", true)
		assert.NoError(t, err)
	})

	t.Run("stranger", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.On("GetByID", mock.Anything, "b-1").Return(confirmedBooking(), nil)

		_, err := f.svc.GetByID(context.Background(), "b-1", "user-2", false)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("expired hold is hidden", func(t *testing.T) {
		f := newFixture(t)
		b := confirmedBooking()
		b.Status = domain.StatusTemporary
		b.ExpiresAt = null.TimeFrom(testNow.Add(-time.Second))
		f.bookings.On("GetByID", mock.Anything, "b-1").Return(b, nil)

		_, err := f.svc.GetByID(context.Background(), "b-1", "user-1", false)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("swept hold is hidden", func(t *testing.T) {
		f := newFixture(t)
		b := confirmedBooking()
		b.Status = domain.StatusExpired
		b.ExpiresAt = null.TimeFrom(testNow.Add(-6 * time.Minute))
		f.bookings.On("GetByID", mock.Anything, "b-1").Return(b, nil)

		_, err := f.svc.GetByID(context.Background(), "b-1", "user-1", false)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.On("GetByID", mock.Anything, "b-1").Return(nil, errors.New("timeout"))

		_, err := f.svc.GetByID(context.Background(), "b-1", "user-1", false)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_GetUserBookings(t *testing.T) {
	t.Run("all statuses by default, expired holds dropped", func(t *testing.T) {
		f := newFixture(t)
		expired := &domain.Booking{ID: "b-2", UserID: "user-1", Status: domain.StatusTemporary,
			ExpiresAt: null.TimeFrom(testNow.Add(-time.Minute))}
		f.bookings.On("GetByFilter", mock.Anything, mock.MatchedBy(func(flt domain.BookingFilter) bool {
			return *flt.UserID == "user-1" && flt.Statuses == nil && flt.NewestFirst
		})).Return([]*domain.Booking{expired, confirmedBooking()}, nil)

		resp, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: "user-1", RequesterID: "user-1",
		})
		require.NoError(t, err)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, "b-1", resp.Bookings[0].ID)
	})

	t.Run("status filter", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.On("GetByFilter", mock.Anything, mock.MatchedBy(func(flt domain.BookingFilter) bool {
			return len(flt.Statuses) == 1 && flt.Statuses[0] == domain.StatusCancelled
		})).Return([]*domain.Booking{}, nil)

		resp, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: "user-1", RequesterID: "user-1", Status: "cancelled",
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Bookings)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: "user-1", RequesterID: "user-1", Status: "pending",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("other user's list", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: "user-1", RequesterID: "user-2",
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.On("GetByID", mock.Anything, "b-1").Return(confirmedBooking(), nil)
		f.bookings.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Status == domain.StatusCancelled && b.CancelledAt.Time.Equal(testNow)
		}), domain.StatusConfirmed).Return(nil)

		resp, err := f.svc.Cancel(context.Background(), "b-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		assert.Equal(t, []string{metrics.EventCancelled}, f.events.Recorded())
	})

	tests := []struct {
		name      string
		mutate    func(b *domain.Booking)
		requester string
		wantErr   error
	}{
		{name: "stranger", requester: "user-2", wantErr: domain.ErrForbidden},
		{name: "temporary", requester: "user-1", wantErr: domain.ErrInvalidState,
			mutate: func(b *domain.Booking) { b.Status = domain.StatusTemporary }},
		{name: "completed", requester: "user-1", wantErr: domain.ErrInvalidState,
			mutate: func(b *domain.Booking) { b.Status = domain.StatusCompleted }},
		{name: "already started", requester: "user-1", wantErr: domain.ErrAlreadyStarted,
			mutate: func(b *domain.Booking) { b.StartTime = testNow.Add(-time.Minute) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			b := confirmedBooking()
			if tt.mutate != nil {
				tt.mutate(b)
			}
			f.bookings.On("GetByID", mock.Anything, "b-1").Return(b, nil)

			_, err := f.svc.Cancel(context.Background(), "b-1", tt.requester)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.events.Recorded())
		})
	}

	t.Run("start equal to now is still cancellable", func(t *testing.T) {
		f := newFixture(t)
		b := confirmedBooking()
		b.StartTime = testNow
		f.bookings.On("GetByID", mock.Anything, "b-1").Return(b, nil)
		f.bookings.On("UpdateStatus", mock.Anything, mock.Anything, domain.StatusConfirmed).Return(nil)

		_, err := f.svc.Cancel(context.Background(), "b-1", "user-1")
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.On("GetByID", mock.Anything, "b-1").Return(nil, bookingRepo.ErrBookingNotFound)

		_, err := f.svc.Cancel(context.Background(), "b-1", "user-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("concurrent change", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.On("GetByID", mock.Anything, "b-1").Return(confirmedBooking(), nil)
		f.bookings.On("UpdateStatus", mock.Anything, mock.Anything, domain.StatusConfirmed).
			Return(bookingRepo.ErrStatusConflict)

		_, err := f.svc.Cancel(context.Background(), "b-1", "user-1")
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestService_QRCode(t *testing.T) {
	f := newFixture(t)
	f.bookings.On("GetByID", mock.Anything, "b-1").Return(confirmedBooking(), nil)

	resp, err := f.svc.QRCode(context.Background(), "b-1", "user-1", false)
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(resp.Payload), &payload))
	assert.Equal(t, map[string]string{
		"bookingId": "b-1",
		"userId":    "user-1",
		"timestamp": "2024-03-15T09:00:00Z",
	}, payload)
}

func TestService_ListBookings(t *testing.T) {
	t.Run("with user details", func(t *testing.T) {
		f := newFixture(t)
		lotID := "lot-1"
		other := confirmedBooking()
		other.ID, other.UserID, other.LotID = "b-2", "ghost", "lot-gone"

		f.bookings.On("GetByFilter", mock.Anything, mock.MatchedBy(func(flt domain.BookingFilter) bool {
			return *flt.LotID == lotID && flt.Limit == 10 && flt.NewestFirst
		})).Return([]*domain.Booking{confirmedBooking(), other}, nil)
		f.users.On("GetByIDs", mock.Anything, []string{"user-1", "ghost"}).Return(map[string]*domain.User{
			"user-1": {ID: "user-1", Name: "Ann", Email: "ann@campus.edu"},
		}, nil)
		f.lots.On("List", mock.Anything, false).Return([]*domain.ParkingLot{{ID: "lot-1", Name: "North"}}, nil)

		resp, err := f.svc.ListBookings(context.Background(), &models.ListBookingsRequest{
			LotID: &lotID, Limit: 10, IncludeUserDetails: true,
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 2)
		assert.Equal(t, "Ann", resp.Bookings[0].UserName)
		assert.Equal(t, "North", resp.Bookings[0].LotName)
		assert.Equal(t, domain.UnknownUserName, resp.Bookings[1].UserName)
		assert.Equal(t, domain.UnknownLotName, resp.Bookings[1].LotName)
	})

	t.Run("without details skips enrichment", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.On("GetByFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{confirmedBooking()}, nil)

		resp, err := f.svc.ListBookings(context.Background(), &models.ListBookingsRequest{Status: "all"})
		require.NoError(t, err)
		assert.Empty(t, resp.Bookings[0].UserName)
	})

	t.Run("inverted range", func(t *testing.T) {
		f := newFixture(t)
		from, to := testNow, testNow.AddDate(0, 0, -1)

		_, err := f.svc.ListBookings(context.Background(), &models.ListBookingsRequest{From: &from, To: &to})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestService_SweepExpiredHolds(t *testing.T) {
	f := newFixture(t)
	f.bookings.On("ExpireHolds", mock.Anything, testNow, (*string)(nil)).Return([]*domain.Booking{
		{ID: "b-1", LotID: "lot-1", SpotID: "A1", UserID: "user-1"},
		{ID: "b-2", LotID: "lot-1", SpotID: "A2", UserID: "user-2"},
	}, nil)

	n, err := f.svc.SweepExpiredHolds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{metrics.EventHoldExpired, metrics.EventHoldExpired}, f.events.Recorded())
	assert.Len(t, f.logger.Lines(), 2)
}
