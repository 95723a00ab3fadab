package report_maintenance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/voidfloat/FLT-SchedulingService/internal/api/handlers"
	"github.com/voidfloat/FLT-SchedulingService/internal/service/tanks"
	"github.com/voidfloat/FLT-SchedulingService/internal/service/tanks/models"
)

const (
	msgInvalidTankID      = "некорректный ID танка"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgTankNotFound       = "танк не найден"
	msgInvalidSeverity    = "недопустимая серьёзность поломки"
	msgInvalidInput       = "некорректные данные заявки"
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

// ReportMaintenanceRequest HTTP request model
type ReportMaintenanceRequest struct {
	Description string `json:"description"`
	Severity    string `json:"severity"`
	ReportedBy  string `json:"reportedBy"`
}

// Handle POST /api/v1/tanks/{tankId}/maintenance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tankID, err := strconv.ParseInt(vars["tankId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /tanks/{id}/maintenance - Invalid tank ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTankID)
		return
	}

	var req ReportMaintenanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tanks/{id}/maintenance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	log, err := h.service.ReportMaintenance(r.Context(), tankID, &models.ReportMaintenanceRequest{
		Description: req.Description,
		Severity:    req.Severity,
		ReportedBy:  req.ReportedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, tanks.ErrTankNotFound):
			h.logger.Warn("POST /tanks/{id}/maintenance - Tank not found: tank_id=%d", tankID)
			handlers.RespondNotFound(w, msgTankNotFound)

		case errors.Is(err, tanks.ErrInvalidSeverity):
			h.logger.Warn("POST /tanks/{id}/maintenance - Invalid severity: tank_id=%d, severity=%s",
				tankID, req.Severity)
			handlers.RespondBadRequest(w, msgInvalidSeverity)

		case errors.Is(err, tanks.ErrInvalidInput):
			h.logger.Warn("POST /tanks/{id}/maintenance - Invalid input: tank_id=%d, error=%v", tankID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tanks/{id}/maintenance - Failed to report maintenance: tank_id=%d, error=%v",
				tankID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tanks/{id}/maintenance - Maintenance reported successfully: tank_id=%d, log_id=%d, severity=%s",
		tankID, log.ID, req.Severity)
	handlers.RespondJSON(w, http.StatusCreated, log)
}
