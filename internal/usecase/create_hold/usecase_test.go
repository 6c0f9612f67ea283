package create_hold

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"

	"github.com/Raorakshith/smartparking/internal/domain"
	bookingRepo "github.com/Raorakshith/smartparking/internal/infra/storage/booking"
	lotRepo "github.com/Raorakshith/smartparking/internal/infra/storage/lot"
	"github.com/Raorakshith/smartparking/internal/mocks"
	"github.com/Raorakshith/smartparking/pkg/clock"
	"github.com/Raorakshith/smartparking/pkg/metrics"
	"github.com/Raorakshith/smartparking/pkg/txmanager"
)

var (
	testNow  = time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	testDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
)

func at(h, m int) time.Time {
	return time.Date(2024, 3, 15, h, m, 0, 0, time.UTC)
}

func testLot() *domain.ParkingLot {
	return &domain.ParkingLot{
		ID:         "lot-1",
		Name:       "North",
		HourlyRate: 3,
		TotalSpots: 2,
		Active:     true,
		Spots:      []domain.Spot{{ID: "A1"}, {ID: "A2"}},
	}
}

func validRequest() *Request {
	return &Request{
		UserID:    "user-1",
		LotID:     "lot-1",
		SpotID:    "A1",
		Date:      testDate,
		StartTime: "10:00",
		EndTime:   "12:30",
	}
}

type fixture struct {
	uc       *UseCase
	bookings *mocks.BookingRepository
	lots     *mocks.LotRepository
	tx       *mocks.TxManager
	events   *mocks.Events
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		bookings: mocks.NewBookingRepository(t),
		lots:     mocks.NewLotRepository(t),
		tx:       &mocks.TxManager{},
		events:   &mocks.Events{},
	}
	f.uc = NewUseCase(f.bookings, f.lots, f.tx, f.events, clock.Fixed{At: testNow}, &mocks.Logger{})
	return f
}

func (f *fixture) expectFreeSpot(existing []*domain.Booking) {
	lotID := "lot-1"
	f.lots.On("GetByID", mock.Anything, "lot-1").Return(testLot(), nil)
	f.bookings.On("ExpireHolds", mock.Anything, testNow, &lotID).Return([]*domain.Booking{}, nil)
	f.bookings.On("GetByFilter", mock.Anything, mock.MatchedBy(func(flt domain.BookingFilter) bool {
		return *flt.LotID == "lot-1" && *flt.SpotID == "A1" && flt.DateFrom.Equal(testDate)
	})).Return(existing, nil)
}

func TestExecute_CreatesTemporaryHold(t *testing.T) {
	f := newFixture(t)
	f.expectFreeSpot([]*domain.Booking{
		// Соседнее окно [8:00, 10:00) не пересекается с [10:00, 12:30)
		{SpotID: "A1", Status: domain.StatusConfirmed, StartTime: at(8, 0), EndTime: at(10, 0)},
	})
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Return(mocks.ReturnArg, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, string(domain.StatusTemporary), resp.Status)
	assert.Equal(t, at(10, 0), resp.StartTime)
	assert.Equal(t, at(12, 30), resp.EndTime)
	assert.Equal(t, testNow.Add(5*time.Minute), resp.ExpiresAt)
	assert.InDelta(t, 2.5, resp.DurationHours, 1e-9)
	assert.InDelta(t, 7.5, resp.TotalCost, 1e-9)
	assert.InDelta(t, 3.0, resp.HourlyRate, 1e-9)
	assert.Equal(t, []string{metrics.EventHoldCreated}, f.events.Recorded())
	assert.Equal(t, 1, f.tx.Calls)
}

func TestExecute_SpotTaken(t *testing.T) {
	f := newFixture(t)
	f.expectFreeSpot([]*domain.Booking{
		{SpotID: "A1", Status: domain.StatusTemporary, StartTime: at(12, 0), EndTime: at(13, 0),
			ExpiresAt: nullTime(testNow.Add(time.Minute))},
	})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrSpotUnavailable)
	assert.Empty(t, f.events.Recorded())
}

func TestExecute_ConcurrentInsertConflict(t *testing.T) {
	f := newFixture(t)
	f.expectFreeSpot([]*domain.Booking{})
	f.bookings.On("Create", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: exclusion", bookingRepo.ErrHoldConflict))

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrSpotUnavailable)
}

func TestExecute_SerializationFailureOnCommit(t *testing.T) {
	f := newFixture(t)
	f.expectFreeSpot([]*domain.Booking{})
	f.bookings.On("Create", mock.Anything, mock.Anything).
		Return(mocks.ReturnArg, nil)
	f.tx.Err = fmt.Errorf("%w: %w", txmanager.ErrCommitTx, &pq.Error{Code: "40001"})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrSpotUnavailable)
}

func TestExecute_ValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		lot     *domain.ParkingLot
		lotErr  error
		wantErr error
	}{
		{
			name:    "bad clock",
			mutate:  func(r *Request) { r.StartTime = "25:00" },
			wantErr: domain.ErrInvalidTimeFormat,
		},
		{
			name:    "end before start",
			mutate:  func(r *Request) { r.StartTime, r.EndTime = "12:00", "10:00" },
			wantErr: domain.ErrInvalidWindow,
		},
		{
			name:    "lot missing",
			lotErr:  lotRepo.ErrLotNotFound,
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "spot not in lot",
			mutate:  func(r *Request) { r.SpotID = "Z9" },
			lot:     testLot(),
			wantErr: domain.ErrNotFound,
		},
		{
			name: "inactive lot",
			lot: func() *domain.ParkingLot {
				l := testLot()
				l.Active = false
				return l
			}(),
			wantErr: domain.ErrInvalidState,
		},
		{
			name: "zero rate",
			lot: func() *domain.ParkingLot {
				l := testLot()
				l.HourlyRate = 0
				return l
			}(),
			wantErr: domain.ErrInvalidRate,
		},
		{
			name:    "missing user",
			mutate:  func(r *Request) { r.UserID = "" },
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.lot != nil || tt.lotErr != nil {
				f.lots.On("GetByID", mock.Anything, "lot-1").Return(tt.lot, tt.lotErr)
			}
			req := validRequest()
			if tt.mutate != nil {
				tt.mutate(req)
			}

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_RepositoryFailure(t *testing.T) {
	f := newFixture(t)
	f.lots.On("GetByID", mock.Anything, "lot-1").Return(nil, errors.New("connection reset"))

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func nullTime(t time.Time) null.Time {
	return null.TimeFrom(t)
}
