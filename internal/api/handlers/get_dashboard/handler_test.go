package get_dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/internal/mocks"
	getDashboard "github.com/Raorakshith/smartparking/internal/usecase/get_dashboard"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context) (*getDashboard.Response, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getDashboard.Response), args.Error(1)
}

func get(uc GetDashboardUseCase) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, &mocks.Logger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	return rec
}

func TestHandler_Dashboard(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything).Return(&getDashboard.Response{
		GeneratedAt:   day.Add(10 * time.Hour),
		TotalBookings: 3,
		TotalRevenue:  12,
		OccupancyRate: 25,
		Occupancy:     []domain.LotOccupancy{{LotID: "lot-a", LotName: "North", OccupiedSpots: 1, TotalSpots: 4, OccupancyRate: 25}},
		WeeklyTrend:   []domain.DayCount{{Date: day, Label: "Fri", Count: 3}},
		RecentBookings: []getDashboard.RecentBooking{
			{BookingID: "b-1", UserName: "Ann", LotName: "North", Status: domain.StatusConfirmed},
		},
	}, nil)

	rec := get(uc)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 25, resp.OccupancyRate)
	assert.Equal(t, "2024-03-15", resp.WeeklyTrend[0].Date)
	assert.Equal(t, "confirmed", resp.RecentBookings[0].Status)
	assert.Empty(t, resp.TodayRevenue)
}

func TestHandler_Error(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything).Return(nil, fmt.Errorf("boom"))

	assert.Equal(t, http.StatusInternalServerError, get(uc).Code)
}
