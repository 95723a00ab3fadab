package get_admin_schedule

import (
	"time"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
	getAdminSchedule "github.com/voidfloat/FLT-SchedulingService/internal/usecase/get_admin_schedule"
)

// TankResponse HTTP модель танка в сетке расписания
type TankResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// EntryResponse HTTP модель записи таймлайна
type EntryResponse struct {
	ID          string `json:"id"`
	TankID      int64  `json:"tankId"`
	Type        string `json:"type"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status,omitempty"`
	ClientName  string `json:"clientName,omitempty"`
	ServiceName string `json:"serviceName,omitempty"`
}

// ScheduleResponse HTTP модель расписания дня
type ScheduleResponse struct {
	Date    string          `json:"date"`
	Tanks   []TankResponse  `json:"tanks"`
	Entries []EntryResponse `json:"entries"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(dateStr string) (*getAdminSchedule.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}
	return &getAdminSchedule.Request{Date: date}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAdminSchedule.Response) *ScheduleResponse {
	tanks := make([]TankResponse, 0, len(resp.Tanks))
	for _, t := range resp.Tanks {
		tanks = append(tanks, TankResponse{
			ID:     t.ID,
			Name:   t.Name,
			Status: t.Status,
		})
	}

	entries := make([]EntryResponse, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		entries = append(entries, EntryResponse{
			ID:          e.ID,
			TankID:      e.TankID,
			Type:        e.Type,
			StartTime:   e.StartTime.Format(time.RFC3339),
			EndTime:     e.EndTime.Format(time.RFC3339),
			Status:      e.Status,
			ClientName:  e.ClientName,
			ServiceName: e.ServiceName,
		})
	}

	return &ScheduleResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		Tanks:   tanks,
		Entries: entries,
	}
}
