package get_daily_availability

import (
	"time"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
)

// generateSlots генерирует сетку слотов дня с фиксированным шагом
// от времени открытия до времени закрытия
//
// Кандидатный интервал слота - [t, t + duration) БЕЗ уборки: собственная
// уборка новой записи касается только записей, размещаемых после неё,
// и учитывается при их проверке, потому что занятые интервалы существующих
// записей уже включают уборку
//
// Слоты, у которых t + duration выходит за время закрытия,
// не попадают в сетку вовсе
func generateSlots(
	schedule domain.ScheduleConfig,
	service *domain.Service,
	day time.Time,
	pool []*domain.Tank,
	occupancy domain.TankOccupancy,
) []domain.TimeSlot {
	opening := schedule.OpeningTime(day)
	closing := schedule.ClosingTime(day)
	step := time.Duration(schedule.SlotIntervalMinutes) * time.Minute

	slots := make([]domain.TimeSlot, 0)

	for t := opening; t.Before(closing); t = t.Add(step) {
		candidate := domain.NewInterval(t, service.DurationMinutes)

		// Сессия должна закончиться до закрытия
		if candidate.End.After(closing) {
			continue
		}

		if tank := occupancy.FindFreeTank(pool, candidate); tank != nil {
			tankID := tank.ID
			slots = append(slots, domain.TimeSlot{
				StartTime: t,
				Available: true,
				TankID:    &tankID,
			})
			continue
		}

		slots = append(slots, domain.TimeSlot{
			StartTime: t,
			Available: false,
			Reason:    domain.ReasonBooked,
		})
	}

	return slots
}
