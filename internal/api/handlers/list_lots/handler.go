package list_lots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Raorakshith/smartparking/internal/api/handlers"
	"github.com/Raorakshith/smartparking/internal/domain"
)

const msgLotNotFound = "парковка не найдена"

// Handler отдает список лотов
// includeInactive - true для админского маршрута
type Handler struct {
	service         LotService
	includeInactive bool
	logger          Logger
}

func NewHandler(service LotService, includeInactive bool, logger Logger) *Handler {
	return &Handler{
		service:         service,
		includeInactive: includeInactive,
		logger:          logger,
	}
}

// Handle GET /api/v1/lots, GET /api/v1/admin/lots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), h.includeInactive)
	if err != nil {
		h.logger.Error("GET /lots - Failed to list lots: include_inactive=%t, error=%v", h.includeInactive, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /lots - Lots retrieved successfully: count=%d", len(result.Lots))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/lots/{lotId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	lotID := mux.Vars(r)["lotId"]

	lot, err := h.service.Get(r.Context(), lotID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.logger.Warn("GET /lots/{id} - Lot not found: lot_id=%s", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)
			return
		}
		h.logger.Error("GET /lots/{id} - Failed to get lot: lot_id=%s, error=%v", lotID, err)
		handlers.RespondInternalError(w)
		return
	}

	// Неактивный лот виден только администратору
	if !lot.Active && !h.includeInactive {
		h.logger.Warn("GET /lots/{id} - Lot is inactive: lot_id=%s", lotID)
		handlers.RespondNotFound(w, msgLotNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, lot)
}
