package create_hold

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Raorakshith/smartparking/internal/api/middleware"
	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/internal/mocks"
	createHold "github.com/Raorakshith/smartparking/internal/usecase/create_hold"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createHold.Request) (*createHold.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createHold.Response), args.Error(1)
}

const body = `{"lotId":"lot-1","spotId":"A1","date":"2024-03-15","startTime":"10:00","endTime":"12:00"}`

func serve(uc CreateHoldUseCase, userID, payload string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/holds", NewHandler(uc, &mocks.Logger{}).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/bookings/holds", strings.NewReader(payload))
	if userID != "" {
		req = req.WithContext(middleware.WithIdentity(req.Context(), middleware.Identity{UserID: userID, Role: domain.RoleUser}))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	uc := &mockUseCase{}
	start := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createHold.Request) bool {
		return r.UserID == "user-1" && r.LotID == "lot-1" && r.SpotID == "A1" &&
			r.Date.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) && r.StartTime == "10:00"
	})).Return(&createHold.Response{
		ID: "b-1", UserID: "user-1", LotID: "lot-1", SpotID: "A1", Status: "temporary",
		BookingDate: start, StartTime: start, EndTime: start.Add(2 * time.Hour),
		TotalCost: 4, ExpiresAt: start.Add(-55 * time.Minute),
	}, nil)

	rec := serve(uc, "user-1", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp HoldResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "b-1", resp.ID)
	assert.Equal(t, "2024-03-15", resp.BookingDate)
	assert.Equal(t, "2024-03-15T09:05:00Z", resp.ExpiresAt)
	uc.AssertExpectations(t)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("x: %w", domain.ErrInvalidTimeFormat), want: http.StatusBadRequest},
		{err: fmt.Errorf("x: %w", domain.ErrInvalidWindow), want: http.StatusBadRequest},
		{err: fmt.Errorf("x: %w", domain.ErrInvalidRate), want: http.StatusBadRequest},
		{err: fmt.Errorf("x: %w", domain.ErrNotFound), want: http.StatusNotFound},
		{err: fmt.Errorf("x: %w", domain.ErrInvalidState), want: http.StatusConflict},
		{err: fmt.Errorf("x: %w", domain.ErrSpotUnavailable), want: http.StatusConflict},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(uc, "user-1", body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_BadRequests(t *testing.T) {
	uc := &mockUseCase{}

	assert.Equal(t, http.StatusUnauthorized, serve(uc, "", body).Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "user-1", `{"lotId":`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "user-1", `{"lotId":"l","date":"15.03.2024"}`).Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
