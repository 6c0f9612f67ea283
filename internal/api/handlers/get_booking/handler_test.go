package get_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Raorakshith/smartparking/internal/api/middleware"
	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/internal/mocks"
	"github.com/Raorakshith/smartparking/internal/service/bookings/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, id, requesterID string, isAdmin bool) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, requesterID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func (m *mockService) QRCode(ctx context.Context, bookingID, requesterID string, isAdmin bool) (*models.QRCodeResponse, error) {
	args := m.Called(ctx, bookingID, requesterID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QRCodeResponse), args.Error(1)
}

func serve(svc BookingService, path string, role domain.Role) *httptest.ResponseRecorder {
	h := NewHandler(svc, &mocks.Logger{})
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}", h.Handle).Methods(http.MethodGet)
	router.HandleFunc("/bookings/{bookingId}/qr", h.HandleQR).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), middleware.Identity{UserID: "user-1", Role: role}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Get(t *testing.T) {
	svc := &mockService{}
	svc.On("GetByID", mock.Anything, "b-1", "user-1", true).Return(&models.BookingResponse{ID: "b-1"}, nil)
	svc.On("GetByID", mock.Anything, "b-2", "user-1", false).Return(nil, fmt.Errorf("x: %w", domain.ErrForbidden))
	svc.On("GetByID", mock.Anything, "b-3", "user-1", false).Return(nil, fmt.Errorf("x: %w", domain.ErrNotFound))

	assert.Equal(t, http.StatusOK, serve(svc, "/bookings/b-1", domain.RoleAdmin).Code)
	assert.Equal(t, http.StatusForbidden, serve(svc, "/bookings/b-2", domain.RoleUser).Code)
	assert.Equal(t, http.StatusNotFound, serve(svc, "/bookings/b-3", domain.RoleUser).Code)
}

func TestHandler_QR(t *testing.T) {
	svc := &mockService{}
	svc.On("QRCode", mock.Anything, "b-1", "user-1", false).Return(&models.QRCodeResponse{
		BookingID: "b-1",
		Payload:   `{"bookingId":"b-1","userId":"user-1","timestamp":"2024-03-15T09:00:00Z"}`,
	}, nil)

	rec := serve(svc, "/bookings/b-1/qr", domain.RoleUser)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bookingId":"b-1"`)
	svc.AssertExpectations(t)
}
