package get_daily_availability

import (
	"time"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
	getDailyAvailability "github.com/voidfloat/FLT-SchedulingService/internal/usecase/get_daily_availability"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Time      string `json:"time"`             // "10:15"
	Available bool   `json:"available"`        // Доступен ли слот
	TankID    *int64 `json:"tankId,omitempty"` // Назначаемый танк (для доступных)
	Reason    string `json:"reason,omitempty"` // Причина недоступности
}

// AvailabilityResponse HTTP модель ответа с сеткой слотов
type AvailabilityResponse struct {
	Date      string         `json:"date"` // "2025-11-20"
	ServiceID int64          `json:"serviceId"`
	Slots     []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(serviceID int64, dateStr string) (*getDailyAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getDailyAvailability.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDailyAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:      s.StartTime.Format(domain.TimeFormat),
			Available: s.Available,
			TankID:    s.TankID,
			Reason:    string(s.Reason),
		})
	}

	return &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}
