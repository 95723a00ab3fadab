package resolve_maintenance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/voidfloat/FLT-SchedulingService/internal/api/handlers"
	"github.com/voidfloat/FLT-SchedulingService/internal/service/tanks"
)

const (
	msgInvalidLogID = "некорректный ID заявки"
	msgNotFound     = "открытая заявка на обслуживание не найдена"
)

type Handler struct {
	service TankService
	logger  Logger
}

func NewHandler(service TankService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/maintenance/{logId}/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	logID, err := strconv.ParseInt(vars["logId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /maintenance/{id}/resolve - Invalid log ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLogID)
		return
	}

	if err := h.service.ResolveMaintenance(r.Context(), logID); err != nil {
		switch {
		case errors.Is(err, tanks.ErrMaintenanceLogNotFound):
			h.logger.Warn("PATCH /maintenance/{id}/resolve - Log not found: log_id=%d", logID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /maintenance/{id}/resolve - Failed to resolve: log_id=%d, error=%v", logID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /maintenance/{id}/resolve - Maintenance resolved successfully: log_id=%d", logID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
