package list_lots

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/internal/mocks"
	"github.com/Raorakshith/smartparking/internal/service/lots/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, includeInactive bool) (*models.LotListResponse, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LotListResponse), args.Error(1)
}

func (m *mockService) Get(ctx context.Context, id string) (*models.LotResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LotResponse), args.Error(1)
}

func serve(svc LotService, includeInactive bool, target string) *httptest.ResponseRecorder {
	h := NewHandler(svc, includeInactive, &mocks.Logger{})
	router := mux.NewRouter()
	router.HandleFunc("/lots", h.Handle).Methods(http.MethodGet)
	router.HandleFunc("/lots/{lotId}", h.HandleGet).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_List(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, false).Return(&models.LotListResponse{
		Lots: []models.LotResponse{{ID: "lot-a", Name: "North", Active: true}},
	}, nil)
	svc.On("List", mock.Anything, true).Return(nil, fmt.Errorf("boom"))

	rec := serve(svc, false, "/lots")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"North"`)

	assert.Equal(t, http.StatusInternalServerError, serve(svc, true, "/lots").Code)
}

func TestHandler_Get(t *testing.T) {
	svc := &mockService{}
	svc.On("Get", mock.Anything, "lot-a").Return(&models.LotResponse{ID: "lot-a", Active: true}, nil)
	svc.On("Get", mock.Anything, "lot-off").Return(&models.LotResponse{ID: "lot-off", Active: false}, nil)
	svc.On("Get", mock.Anything, "missing").Return(nil, fmt.Errorf("x: %w", domain.ErrNotFound))

	assert.Equal(t, http.StatusOK, serve(svc, false, "/lots/lot-a").Code)
	assert.Equal(t, http.StatusNotFound, serve(svc, false, "/lots/lot-off").Code)
	assert.Equal(t, http.StatusOK, serve(svc, true, "/lots/lot-off").Code)
	assert.Equal(t, http.StatusNotFound, serve(svc, false, "/lots/missing").Code)
}
