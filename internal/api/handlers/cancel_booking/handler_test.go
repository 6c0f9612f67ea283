package cancel_booking

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

func (m *mockService) Cancel(ctx context.Context, bookingID, requesterID string) (*models.BookingResponse, error) {
	args := m.Called(ctx, bookingID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func serve(svc BookingService) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}/cancel", NewHandler(svc, &mocks.Logger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/b-1/cancel", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), middleware.Identity{UserID: "user-1", Role: domain.RoleUser}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Cancelled(t *testing.T) {
	svc := &mockService{}
	svc.On("Cancel", mock.Anything, "b-1", "user-1").Return(&models.BookingResponse{ID: "b-1", Status: "cancelled"}, nil)

	rec := serve(svc)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("x: %w", domain.ErrNotFound), want: http.StatusNotFound},
		{err: fmt.Errorf("x: %w", domain.ErrForbidden), want: http.StatusForbidden},
		{err: fmt.Errorf("x: %w", domain.ErrInvalidState), want: http.StatusConflict},
		{err: fmt.Errorf("x: %w", domain.ErrAlreadyStarted), want: http.StatusConflict},
		{err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := &mockService{}
			svc.On("Cancel", mock.Anything, "b-1", "user-1").Return(nil, tt.err)

			assert.Equal(t, tt.want, serve(svc).Code)
		})
	}
}
