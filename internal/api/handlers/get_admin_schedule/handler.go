package get_admin_schedule

import (
	"errors"
	"net/http"

	"github.com/voidfloat/FLT-SchedulingService/internal/api/handlers"
	getAdminSchedule "github.com/voidfloat/FLT-SchedulingService/internal/usecase/get_admin_schedule"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetAdminScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetAdminScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/schedule
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /admin/schedule - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr)
	if err != nil {
		h.logger.Warn("GET /admin/schedule - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAdminSchedule.ErrInvalidInput):
			h.logger.Warn("GET /admin/schedule - Invalid input: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /admin/schedule - Failed to build schedule: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /admin/schedule - Schedule retrieved successfully: date=%s, tanks=%d, entries=%d",
		dateStr, len(result.Tanks), len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, response)
}
