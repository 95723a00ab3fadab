package create_appointment

import (
	"fmt"
	"time"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.TankID != nil && *req.TankID <= 0 {
		return fmt.Errorf("%w: tankID must be positive", ErrInvalidInput)
	}

	// Административная запись всегда указывает танк явно:
	// обходить проверки занятости без адресата нечего
	if req.Override && req.TankID == nil {
		return fmt.Errorf("%w: override requires an explicit tankID", ErrInvalidInput)
	}

	return nil
}

// validateStartTime проверяет, что момент начала не в прошлом
func validateStartTime(start, now time.Time) error {
	if start.Before(now) {
		return ErrStartTimeInPast
	}
	return nil
}

// validateBusinessHours проверяет, что сессия целиком помещается
// в рабочие часы центра. Уборка после сессии в рабочие часы
// помещаться не обязана
func validateBusinessHours(schedule domain.ScheduleConfig, session domain.Interval) error {
	loc := schedule.Location
	if loc == nil {
		loc = time.UTC
	}

	day := session.Start.In(loc)
	opening := schedule.OpeningTime(day)
	closing := schedule.ClosingTime(day)

	if session.Start.Before(opening) || session.End.After(closing) {
		return fmt.Errorf("%w: session must fit within %02d:00-%02d:00",
			ErrOutsideBusinessHours, schedule.OpenHour, schedule.CloseHour)
	}

	return nil
}
