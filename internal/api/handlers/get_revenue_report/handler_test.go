package get_revenue_report

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
	getRevenueReport "github.com/Raorakshith/smartparking/internal/usecase/get_revenue_report"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getRevenueReport.Request) (*getRevenueReport.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getRevenueReport.Response), args.Error(1)
}

func get(uc GetRevenueReportUseCase, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, &mocks.Logger{}).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Report(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getRevenueReport.Request{From: from, To: to}).Return(&getRevenueReport.Response{
		From: from, To: to, TotalRevenue: 18, BookingsCount: 3,
		ByLot:  []domain.LotRevenue{{LotID: "lot-a", LotName: "North", Revenue: 18, BookingsCount: 3}},
		ByDate: []domain.DailyRevenue{{Date: from.AddDate(0, 0, 14), Revenue: 18, BookingsCount: 3}},
	}, nil)

	rec := get(uc, "/admin/reports/revenue?from=2024-03-01&to=2024-03-31")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp RevenueReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 18.0, resp.TotalRevenue)
	assert.Equal(t, "2024-03-15", resp.ByDate[0].Date)
	assert.Equal(t, "North", resp.ByLot[0].LotName)
}

func TestHandler_BadRequests(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("x: %w", domain.ErrInvalidInput))

	assert.Equal(t, http.StatusBadRequest, get(uc, "/admin/reports/revenue?from=2024-03-01").Code)
	assert.Equal(t, http.StatusBadRequest, get(uc, "/admin/reports/revenue?from=03/01&to=2024-03-31").Code)
	assert.Equal(t, http.StatusBadRequest, get(uc, "/admin/reports/revenue?from=2024-03-31&to=2024-03-01").Code)
	uc.AssertNumberOfCalls(t, "Execute", 1)
}
