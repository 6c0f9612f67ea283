package get_available_spots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/internal/mocks"
	getAvailableSpots "github.com/Raorakshith/smartparking/internal/usecase/get_available_spots"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSpots.Request) (*getAvailableSpots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSpots.Response), args.Error(1)
}

func serve(uc GetAvailableSpotsUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/lots/{lotId}/available-spots", NewHandler(uc, &mocks.Logger{}).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_ReturnsSpots(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getAvailableSpots.Request{
		LotID: "lot-a", Date: date, StartTime: "09:00", EndTime: "11:00",
	}).Return(&getAvailableSpots.Response{
		LotID:       "lot-a",
		LotName:     "North",
		Date:        date,
		WindowStart: date.Add(9 * time.Hour),
		WindowEnd:   date.Add(11 * time.Hour),
		Spots:       []domain.Spot{{ID: "A2"}, {ID: "A3", Accessible: true}},
		TotalSpots:  3,
		HourlyRate:  2, EstimatedHours: 2, EstimatedCost: 4,
	}, nil)

	rec := serve(uc, "/lots/lot-a/available-spots?date=2024-03-15&start=09:00&end=11:00")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AvailableSpotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.AvailableCount)
	assert.Equal(t, "A2", resp.AvailableSpots[0].ID)
	assert.Equal(t, 4.0, resp.EstimatedCost)
	assert.Equal(t, "2024-03-15", resp.Date)
}

func TestHandler_BadRequests(t *testing.T) {
	uc := &mockUseCase{}

	assert.Equal(t, http.StatusBadRequest, serve(uc, "/lots/lot-a/available-spots?date=2024-03-15").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "/lots/lot-a/available-spots?date=15.03.2024&start=09:00&end=11:00").Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("x: %w", domain.ErrNotFound), want: http.StatusNotFound},
		{err: fmt.Errorf("x: %w", domain.ErrInvalidTimeFormat), want: http.StatusBadRequest},
		{err: fmt.Errorf("x: %w", domain.ErrInvalidWindow), want: http.StatusBadRequest},
		{err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.want, serve(uc, "/lots/lot-a/available-spots?date=2024-03-15&start=09:00&end=25:00").Code)
		})
	}
}
