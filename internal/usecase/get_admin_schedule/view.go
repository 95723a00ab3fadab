package get_admin_schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
)

// buildTimeline проецирует записи дня в записи таймлайна.
// Каждая запись даёт сессию; записи в блокирующих статусах дополнительно
// дают блок уборки [endTime, endTime+cleanup) без данных клиента
func buildTimeline(appointments []*domain.Appointment, blockingStatuses []domain.AppointmentStatus) []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, len(appointments)*2)

	for _, appt := range appointments {
		entries = append(entries, ScheduleEntry{
			ID:          strconv.FormatInt(appt.ID, 10),
			TankID:      appt.TankID,
			Type:        entryType(appt.ServiceName),
			StartTime:   appt.StartTime,
			EndTime:     appt.EndTime,
			Status:      string(appt.Status),
			ClientName:  appt.ClientName,
			ServiceName: appt.ServiceName,
		})

		if appt.CleanupMinutes > 0 && appt.Blocks(blockingStatuses) {
			cleaning := appt.CleaningInterval()
			entries = append(entries, ScheduleEntry{
				ID:        fmt.Sprintf("%d-cleaning", appt.ID),
				TankID:    appt.TankID,
				Type:      EntryTypeCleaning,
				StartTime: cleaning.Start,
				EndTime:   cleaning.End,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].StartTime.Equal(entries[j].StartTime) {
			return entries[i].TankID < entries[j].TankID
		}
		return entries[i].StartTime.Before(entries[j].StartTime)
	})

	return entries
}

// entryType определяет тип сессии по названию услуги
func entryType(serviceName string) string {
	if strings.Contains(strings.ToLower(serviceName), "massage") {
		return EntryTypeMassage
	}
	return EntryTypeFloat
}

func toTankInfos(tanks []*domain.Tank) []TankInfo {
	infos := make([]TankInfo, 0, len(tanks))
	for _, t := range tanks {
		infos = append(infos, TankInfo{
			ID:     t.ID,
			Name:   t.Name,
			Status: string(t.Status),
		})
	}
	return infos
}
