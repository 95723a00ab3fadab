package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a booked session on a tank.
// EndTime is the moment the client leaves the tank; the post-session cleanup
// buffer is NOT part of [StartTime, EndTime) and is accounted for separately
// via CleanupMinutes (denormalized from the service at booking time)
type Appointment struct {
	ID             int64
	ClientID       int64
	ServiceID      int64
	TankID         int64
	StartTime      time.Time
	EndTime        time.Time
	CleanupMinutes int
	Status         AppointmentStatus
	IsOverride     bool

	// Denormalized data for history
	ServiceName  string
	ServicePrice int64
	ClientName   string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionInterval returns the client-facing interval [StartTime, EndTime)
func (a *Appointment) SessionInterval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// OccupiedInterval returns the interval during which the tank is actually
// blocked: session time plus the cleanup buffer. All conflict checks must
// operate on this interval, never on the raw session interval
func (a *Appointment) OccupiedInterval() Interval {
	return a.SessionInterval().Extend(a.CleanupMinutes)
}

// CleaningInterval returns the synthetic cleaning block [EndTime, EndTime+cleanup)
func (a *Appointment) CleaningInterval() Interval {
	return NewInterval(a.EndTime, a.CleanupMinutes)
}

// Blocks returns true if the appointment occupies its tank given the
// configured set of blocking statuses
func (a *Appointment) Blocks(blockingStatuses []AppointmentStatus) bool {
	for _, s := range blockingStatuses {
		if a.Status == s {
			return true
		}
	}
	return false
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment no longer occupies a tank
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled || a.Status == StatusNoShow
}

// IsFinal returns true if the appointment is immutable
func (a *Appointment) IsFinal() bool {
	return a.Status == StatusCompleted
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	DayStart *time.Time          // Начало окна (опционально)
	DayEnd   *time.Time          // Конец окна (опционально)
	Statuses []AppointmentStatus // Фильтр по статусам (пустой = все)
	TankID   *int64              // Фильтр по танку (опционально)
	ClientID *int64              // Фильтр по клиенту (опционально)
}
