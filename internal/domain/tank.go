package domain

import "time"

// TankStatus represents the live operational mode of a tank.
// The status is informational and set manually by staff; it is NOT derived
// from the appointment calendar
type TankStatus string

const (
	TankStatusFree        TankStatus = "free"
	TankStatusInSession   TankStatus = "in_session"
	TankStatusCleaning    TankStatus = "cleaning"
	TankStatusNightMode   TankStatus = "night_mode"
	TankStatusMaintenance TankStatus = "maintenance"
	TankStatusStandby     TankStatus = "standby"
)

// ValidTankStatuses все допустимые статусы танка
var ValidTankStatuses = []TankStatus{
	TankStatusFree,
	TankStatusInSession,
	TankStatusCleaning,
	TankStatusNightMode,
	TankStatusMaintenance,
	TankStatusStandby,
}

// IsValid returns true if the status is one of the known tank statuses
func (s TankStatus) IsValid() bool {
	for _, v := range ValidTankStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Tank represents a physical bookable asset (float tank or treatment room)
type Tank struct {
	ID        int64
	Name      string
	Active    bool
	Status    TankStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Bookable returns true if the tank may be considered for future bookings.
// Only `active` and the maintenance status matter here: a tank that is
// in_session right now is still bookable for a later window - actual
// conflicts are decided by interval overlap, not by live status
func (t *Tank) Bookable() bool {
	return t.Active && t.Status != TankStatusMaintenance
}
