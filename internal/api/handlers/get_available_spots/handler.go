package get_available_spots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Raorakshith/smartparking/internal/api/handlers"
	"github.com/Raorakshith/smartparking/internal/domain"
)

const (
	msgMissingParams = "параметры date, start и end обязательны"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime   = "некорректный формат времени, ожидается HH:MM"
	msgInvalidWindow = "время окончания должно быть позже времени начала"
	msgLotNotFound   = "парковка не найдена"
	msgInvalidInput  = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSpotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSpotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/lots/{lotId}/available-spots
// Query params: date (YYYY-MM-DD), start (HH:MM), end (HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID := mux.Vars(r)["lotId"]
	query := r.URL.Query()

	dateStr, start, end := query.Get("date"), query.Get("start"), query.Get("end")
	if dateStr == "" || start == "" || end == "" {
		h.logger.Warn("GET /lots/{id}/available-spots - Missing query params: lot_id=%s", lotID)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(lotID, dateStr, start, end)
	if err != nil {
		h.logger.Warn("GET /lots/{id}/available-spots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /lots/{id}/available-spots - Lot not found: lot_id=%s", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, domain.ErrInvalidTimeFormat):
			h.logger.Warn("GET /lots/{id}/available-spots - Invalid time: start=%s, end=%s", start, end)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, domain.ErrInvalidWindow):
			h.logger.Warn("GET /lots/{id}/available-spots - Invalid window: start=%s, end=%s", start, end)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /lots/{id}/available-spots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /lots/{id}/available-spots - Failed to get spots: lot_id=%s, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /lots/{id}/available-spots - Spots retrieved successfully: lot_id=%s, free=%d",
		lotID, len(result.Spots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
