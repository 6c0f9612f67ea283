package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Raorakshith/smartparking/internal/api/handlers"
	"github.com/Raorakshith/smartparking/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgNotTemporary       = "бронирование уже подтверждено или не является временным"
	msgExpired            = "время удержания истекло, создайте бронирование заново"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req ConfirmBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/confirm - Not temporary: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgNotTemporary)

		case errors.Is(err, domain.ErrExpired):
			h.logger.Warn("POST /bookings/{id}/confirm - Hold expired: booking_id=%s", bookingID)
			handlers.RespondGone(w, msgExpired)

		default:
			h.logger.Error("POST /bookings/{id}/confirm - Failed to confirm: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm - Booking confirmed successfully: booking_id=%s, user_id=%s",
		result.BookingID, result.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
