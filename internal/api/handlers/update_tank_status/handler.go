package update_tank_status

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
	msgInvalidStatus      = "недопустимый статус танка"
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

// UpdateTankStatusRequest HTTP request model
type UpdateTankStatusRequest struct {
	Status string `json:"status"`
}

// Handle PATCH /api/v1/tanks/{tankId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tankID, err := strconv.ParseInt(vars["tankId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /tanks/{id}/status - Invalid tank ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTankID)
		return
	}

	var req UpdateTankStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /tanks/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tank, err := h.service.UpdateStatus(r.Context(), tankID, &models.UpdateTankStatusRequest{
		Status: req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, tanks.ErrTankNotFound):
			h.logger.Warn("PATCH /tanks/{id}/status - Tank not found: tank_id=%d", tankID)
			handlers.RespondNotFound(w, msgTankNotFound)

		case errors.Is(err, tanks.ErrInvalidStatus):
			h.logger.Warn("PATCH /tanks/{id}/status - Invalid status: tank_id=%d, status=%s", tankID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /tanks/{id}/status - Failed to update status: tank_id=%d, error=%v", tankID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /tanks/{id}/status - Status updated successfully: tank_id=%d, status=%s", tankID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, tank)
}
