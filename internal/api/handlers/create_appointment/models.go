package create_appointment

import (
	"time"

	createAppointment "github.com/voidfloat/FLT-SchedulingService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID   int64   `json:"clientId"`
	ServiceID  int64   `json:"serviceId"`
	StartTime  string  `json:"startTime"` // RFC 3339, например "2025-11-20T10:00:00-03:00"
	TankID     *int64  `json:"tankId,omitempty"`
	ClientName string  `json:"clientName"`
	Notes      *string `json:"notes,omitempty"`
	Override   bool    `json:"override,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID             int64   `json:"id"`
	ClientID       int64   `json:"clientId"`
	ServiceID      int64   `json:"serviceId"`
	TankID         int64   `json:"tankId"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	CleanupMinutes int     `json:"cleanupMinutes"`
	Status         string  `json:"status"`
	IsOverride     bool    `json:"isOverride,omitempty"`
	ServiceName    string  `json:"serviceName"`
	ServicePrice   int64   `json:"servicePrice"`
	ClientName     string  `json:"clientName"`
	Notes          *string `json:"notes,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:   r.ClientID,
		ServiceID:  r.ServiceID,
		StartTime:  startTime,
		TankID:     r.TankID,
		ClientName: r.ClientName,
		Notes:      r.Notes,
		Override:   r.Override,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:             resp.ID,
		ClientID:       resp.ClientID,
		ServiceID:      resp.ServiceID,
		TankID:         resp.TankID,
		StartTime:      resp.StartTime.Format(time.RFC3339),
		EndTime:        resp.EndTime.Format(time.RFC3339),
		CleanupMinutes: resp.CleanupMinutes,
		Status:         resp.Status,
		IsOverride:     resp.IsOverride,
		ServiceName:    resp.ServiceName,
		ServicePrice:   resp.ServicePrice,
		ClientName:     resp.ClientName,
		Notes:          resp.Notes,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
