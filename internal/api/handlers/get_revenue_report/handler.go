package get_revenue_report

import (
	"errors"
	"net/http"

	"github.com/Raorakshith/smartparking/internal/api/handlers"
	"github.com/Raorakshith/smartparking/internal/domain"
)

const (
	msgMissingRange = "параметры from и to обязательны"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange = "некорректный период отчета"
)

type Handler struct {
	useCase GetRevenueReportUseCase
	logger  Logger
}

func NewHandler(useCase GetRevenueReportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reports/revenue
// Query params: from, to (YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fromStr, toStr := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /admin/reports/revenue - Missing range")
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	useCaseReq, err := ToUseCaseRequest(fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /admin/reports/revenue - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.logger.Warn("GET /admin/reports/revenue - Invalid range: from=%s, to=%s, error=%v", fromStr, toStr, err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /admin/reports/revenue - Failed to build report: from=%s, to=%s, error=%v", fromStr, toStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/reports/revenue - Report built: from=%s, to=%s, bookings=%d",
		fromStr, toStr, result.BookingsCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
