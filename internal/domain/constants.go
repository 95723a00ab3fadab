package domain

// Default schedule configuration values
const (
	DefaultOpenHour            = 8  // 08:00
	DefaultCloseHour           = 22 // 22:00
	DefaultSlotIntervalMinutes = 15
	DefaultCleanupMinutes      = 15
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxCleanupMinutes         = 120
	MaxNotesLength            = 500
	MaxCancellationReasonLen  = 500
	MaxMaintenanceDescription = 1000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultBlockingStatuses статусы, при которых запись занимает танк
// Отменённые и no_show записи освобождают слот
var DefaultBlockingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// ValidAppointmentStatuses все допустимые статусы записи
var ValidAppointmentStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
