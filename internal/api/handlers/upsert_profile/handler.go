package upsert_profile

import (
	"errors"
	"net/http"

	"github.com/Raorakshith/smartparking/internal/api/handlers"
	"github.com/Raorakshith/smartparking/internal/api/middleware"
	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/internal/service/users/models"
)

const (
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidRequest = "некорректный формат запроса"
	msgInvalidProfile = "некорректные данные профиля"
	msgUserNotFound   = "профиль не найден"
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

// Handle PUT /api/v1/users/me
// Пустые поля тела берутся из токена
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("PUT /users/me - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpsertProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PUT /users/me - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	req.UserID = identity.UserID
	req.Role = identity.Role
	if req.Name == "" {
		req.Name = identity.Name
	}
	if req.Email == "" {
		req.Email = identity.Email
	}

	user, err := h.service.UpsertProfile(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.logger.Warn("PUT /users/me - Invalid profile: user_id=%s, error=%v", identity.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidProfile)
			return
		}
		h.logger.Error("PUT /users/me - Failed to upsert profile: user_id=%s, error=%v", identity.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /users/me - Profile saved: user_id=%s", identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, user)
}

// HandleGet GET /api/v1/users/me
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.logger.Warn("GET /users/me - Profile not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.logger.Error("GET /users/me - Failed to get profile: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}
