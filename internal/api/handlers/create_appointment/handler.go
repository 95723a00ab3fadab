package create_appointment

import (
	"errors"
	"net/http"

	"github.com/voidfloat/FLT-SchedulingService/internal/api/handlers"
	createAppointment "github.com/voidfloat/FLT-SchedulingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC 3339"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для записи"
	msgTankNotFound       = "танк не найден"
	msgTankUnavailable    = "танк занят на выбранное время"
	msgNoTankAvailable    = "нет свободных танков на выбранное время"
	msgOutsideHours       = "выбранное время вне рабочих часов центра"
	msgStartTimeInPast    = "выбранное время уже прошло"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrTankUnavailable):
			h.logger.Warn("POST /appointments - Tank unavailable: client_id=%d, service_id=%d", req.ClientID, req.ServiceID)
			handlers.RespondError(w, http.StatusConflict, msgTankUnavailable)

		case errors.Is(err, createAppointment.ErrNoTankAvailable):
			h.logger.Warn("POST /appointments - No tank available: client_id=%d, service_id=%d", req.ClientID, req.ServiceID)
			handlers.RespondError(w, http.StatusConflict, msgNoTankAvailable)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrTankNotFound):
			h.logger.Warn("POST /appointments - Tank not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgTankNotFound)

		case errors.Is(err, createAppointment.ErrServiceInactive):
			h.logger.Warn("POST /appointments - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("POST /appointments - Outside business hours: client_id=%d, start=%s", req.ClientID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrStartTimeInPast):
			h.logger.Warn("POST /appointments - Start time in past: client_id=%d, start=%s", req.ClientID, req.StartTime)
			handlers.RespondBadRequest(w, msgStartTimeInPast)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, service_id=%d, error=%v",
				req.ClientID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, client_id=%d, tank_id=%d",
		result.ID, req.ClientID, result.TankID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
