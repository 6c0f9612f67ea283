package manage_lots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Raorakshith/smartparking/internal/api/handlers"
	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/internal/service/lots/models"
)

const (
	msgInvalidRequest = "некорректный формат запроса"
	msgMissingActive  = "поле active обязательно"
	msgInvalidLot     = "некорректные данные парковки"
	msgLotNotFound    = "парковка не найдена"
	msgLotInUse       = "у парковки есть подтвержденные бронирования"
)

type Handler struct {
	service LotService
	logger  Logger
}

func NewHandler(service LotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/admin/lots
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.LotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/lots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	lot, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/lots", "", err)
		return
	}

	h.logger.Info("POST /admin/lots - Lot created successfully: lot_id=%s", lot.ID)
	handlers.RespondJSON(w, http.StatusCreated, lot)
}

// Update PUT /api/v1/admin/lots/{lotId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	lotID := mux.Vars(r)["lotId"]

	var req models.LotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/lots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	lot, err := h.service.Update(r.Context(), lotID, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/lots/{id}", lotID, err)
		return
	}

	h.logger.Info("PUT /admin/lots/{id} - Lot updated successfully: lot_id=%s", lotID)
	handlers.RespondJSON(w, http.StatusOK, lot)
}

// SetActive PATCH /api/v1/admin/lots/{lotId}/active
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	lotID := mux.Vars(r)["lotId"]

	var req SetActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/lots/{id}/active - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}
	if req.Active == nil {
		handlers.RespondBadRequest(w, msgMissingActive)
		return
	}

	if err := h.service.SetActive(r.Context(), lotID, *req.Active); err != nil {
		h.respondError(w, "PATCH /admin/lots/{id}/active", lotID, err)
		return
	}

	h.logger.Info("PATCH /admin/lots/{id}/active - Lot activity changed: lot_id=%s, active=%t", lotID, *req.Active)
	w.WriteHeader(http.StatusNoContent)
}

// Delete DELETE /api/v1/admin/lots/{lotId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	lotID := mux.Vars(r)["lotId"]

	if err := h.service.Delete(r.Context(), lotID); err != nil {
		h.respondError(w, "DELETE /admin/lots/{id}", lotID, err)
		return
	}

	h.logger.Info("DELETE /admin/lots/{id} - Lot deleted: lot_id=%s", lotID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route, lotID string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.logger.Warn("%s - Lot not found: lot_id=%s", route, lotID)
		handlers.RespondNotFound(w, msgLotNotFound)

	case errors.Is(err, domain.ErrInvalidState):
		h.logger.Warn("%s - Lot in use: lot_id=%s", route, lotID)
		handlers.RespondConflict(w, msgLotInUse)

	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidRate):
		h.logger.Warn("%s - Invalid lot: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidLot)

	default:
		h.logger.Error("%s - Failed: lot_id=%s, error=%v", route, lotID, err)
		handlers.RespondInternalError(w)
	}
}
