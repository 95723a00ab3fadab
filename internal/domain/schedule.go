package domain

import "time"

// ScheduleConfig business-hours and scheduling parameters.
// Threaded explicitly into every scheduling computation instead of hidden
// module constants, so per-location overrides stay possible
type ScheduleConfig struct {
	OpenHour              int
	CloseHour             int
	SlotIntervalMinutes   int
	DefaultCleanupMinutes int
	BlockingStatuses      []AppointmentStatus
	Location              *time.Location
}

// DefaultScheduleConfig returns the schedule configuration with default values
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		OpenHour:              DefaultOpenHour,
		CloseHour:             DefaultCloseHour,
		SlotIntervalMinutes:   DefaultSlotIntervalMinutes,
		DefaultCleanupMinutes: DefaultCleanupMinutes,
		BlockingStatuses:      DefaultBlockingStatuses,
		Location:              time.UTC,
	}
}

// OpeningTime returns the opening instant for the given day
func (c ScheduleConfig) OpeningTime(day time.Time) time.Time {
	day = day.In(c.loc())
	return time.Date(day.Year(), day.Month(), day.Day(), c.OpenHour, 0, 0, 0, c.loc())
}

// ClosingTime returns the closing instant for the given day
func (c ScheduleConfig) ClosingTime(day time.Time) time.Time {
	day = day.In(c.loc())
	return time.Date(day.Year(), day.Month(), day.Day(), c.CloseHour, 0, 0, 0, c.loc())
}

// DayWindow returns the interval [00:00, 24:00) of the given day
// in the configured timezone. The instant is converted to that zone first:
// the calendar day is determined by the configured location, not by the
// offset the caller's timestamp happened to carry
func (c ScheduleConfig) DayWindow(day time.Time) Interval {
	day = day.In(c.loc())
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, c.loc())
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// CleanupFor returns the cleanup buffer for the given service,
// falling back to the configured default when the service carries none
func (c ScheduleConfig) CleanupFor(service *Service) int {
	if service != nil && service.SetupCleanupMinutes > 0 {
		return service.SetupCleanupMinutes
	}
	return c.DefaultCleanupMinutes
}

func (c ScheduleConfig) loc() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.UTC
}
