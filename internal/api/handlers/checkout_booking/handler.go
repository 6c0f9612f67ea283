package checkout_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Raorakshith/smartparking/internal/api/handlers"
	"github.com/Raorakshith/smartparking/internal/api/middleware"
	"github.com/Raorakshith/smartparking/internal/domain"
	checkoutBooking "github.com/Raorakshith/smartparking/internal/usecase/checkout_booking"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "бронирование не найдено"
	msgForbidden     = "доступ запрещен"
	msgNotConfirmed  = "выезд возможен только для подтвержденного бронирования"
)

type Handler struct {
	useCase CheckoutBookingUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/checkout - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkoutBooking.Request{
		BookingID:   bookingID,
		RequesterID: userID,
		IsAdmin:     middleware.IsAdmin(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /bookings/{id}/checkout - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("POST /bookings/{id}/checkout - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/checkout - Not confirmed: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgNotConfirmed)

		default:
			h.logger.Error("POST /bookings/{id}/checkout - Failed to check out: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/checkout - Checked out successfully: booking_id=%s, final_cost=%.2f",
		result.BookingID, result.FinalCost)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
