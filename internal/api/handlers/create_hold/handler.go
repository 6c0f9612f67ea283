package create_hold

import (
	"errors"
	"net/http"

	"github.com/Raorakshith/smartparking/internal/api/handlers"
	"github.com/Raorakshith/smartparking/internal/api/middleware"
	"github.com/Raorakshith/smartparking/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "не указаны лот, место или время"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidWindow      = "время окончания должно быть позже времени начала"
	msgInvalidRate        = "у парковки не задан корректный тариф"
	msgNotFound           = "парковка или место не найдены"
	msgLotInactive        = "парковка временно не работает"
	msgSpotUnavailable    = "место уже занято на выбранное время"
)

type Handler struct {
	useCase CreateHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/holds - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings/holds - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTimeFormat):
			h.logger.Warn("POST /bookings/holds - Invalid time: user_id=%s, %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, domain.ErrInvalidWindow):
			h.logger.Warn("POST /bookings/holds - Invalid window: user_id=%s, %s-%s", userID, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, domain.ErrInvalidRate):
			h.logger.Warn("POST /bookings/holds - Invalid lot rate: lot_id=%s", req.LotID)
			handlers.RespondBadRequest(w, msgInvalidRate)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /bookings/holds - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /bookings/holds - Not found: lot_id=%s, spot_id=%s", req.LotID, req.SpotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidState):
			h.logger.Warn("POST /bookings/holds - Lot inactive: lot_id=%s", req.LotID)
			handlers.RespondConflict(w, msgLotInactive)

		case errors.Is(err, domain.ErrSpotUnavailable):
			h.logger.Warn("POST /bookings/holds - Spot unavailable: lot_id=%s, spot_id=%s, %s %s-%s",
				req.LotID, req.SpotID, req.Date, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgSpotUnavailable)

		default:
			h.logger.Error("POST /bookings/holds - Failed to create hold: user_id=%s, lot_id=%s, error=%v",
				userID, req.LotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/holds - Hold created successfully: booking_id=%s, user_id=%s, lot_id=%s, spot_id=%s",
		result.ID, userID, result.LotID, result.SpotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
