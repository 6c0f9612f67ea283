package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Raorakshith/smartparking/internal/api/handlers"
	"github.com/Raorakshith/smartparking/internal/api/middleware"
	"github.com/Raorakshith/smartparking/internal/domain"
)

const (
	msgNotFound      = "бронирование не найдено"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Сервис сам проверит права доступа
	booking, err := h.service.GetByID(r.Context(), bookingID, userID, middleware.IsAdmin(r.Context()))
	if err != nil {
		h.respondError(w, "GET /bookings/{id}", bookingID, userID, err)
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%s, user_id=%s",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

// HandleQR GET /api/v1/bookings/{bookingId}/qr
func (h *Handler) HandleQR(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/qr - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	qr, err := h.service.QRCode(r.Context(), bookingID, userID, middleware.IsAdmin(r.Context()))
	if err != nil {
		h.respondError(w, "GET /bookings/{id}/qr", bookingID, userID, err)
		return
	}

	h.logger.Info("GET /bookings/{id}/qr - QR payload generated: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, qr)
}

func (h *Handler) respondError(w http.ResponseWriter, route, bookingID, userID string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.logger.Warn("%s - Booking not found: booking_id=%s", route, bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, domain.ErrForbidden):
		h.logger.Warn("%s - Access denied: booking_id=%s, user_id=%s", route, bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	default:
		h.logger.Error("%s - Failed to get booking: booking_id=%s, error=%v", route, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
