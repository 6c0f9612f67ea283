package manage_users

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Raorakshith/smartparking/internal/api/handlers"
	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/internal/service/users/models"
)

const (
	msgInvalidRequest = "некорректный формат запроса"
	msgInvalidRole    = "некорректная роль, ожидается user или admin"
	msgUserNotFound   = "пользователь не найден"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/users - Failed to list users: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/users - Users retrieved successfully: count=%d", len(result.Users))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateRole PATCH /api/v1/admin/users/{userId}/role
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req models.UpdateRoleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/users/{id}/role - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	if err := h.service.UpdateRole(r.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/users/{id}/role - Invalid role: user_id=%s, role=%s", userID, req.Role)
			handlers.RespondBadRequest(w, msgInvalidRole)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PATCH /admin/users/{id}/role - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("PATCH /admin/users/{id}/role - Failed to update role: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/users/{id}/role - Role updated: user_id=%s, role=%s", userID, req.Role)
	w.WriteHeader(http.StatusNoContent)
}
