package domain

import "time"

// MaintenanceSeverity severity of a reported tank issue
type MaintenanceSeverity string

const (
	SeverityLow      MaintenanceSeverity = "low"
	SeverityMedium   MaintenanceSeverity = "medium"
	SeverityHigh     MaintenanceSeverity = "high"
	SeverityCritical MaintenanceSeverity = "critical"
)

// IsValid returns true if the severity is one of the known values
func (s MaintenanceSeverity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// RequiresShutdown returns true if reporting an issue with this severity
// should immediately take the tank out of the bookable pool
func (s MaintenanceSeverity) RequiresShutdown() bool {
	return s == SeverityHigh || s == SeverityCritical
}

// MaintenanceStatus status of a maintenance log entry
type MaintenanceStatus string

const (
	MaintenanceOpen     MaintenanceStatus = "open"
	MaintenanceResolved MaintenanceStatus = "resolved"
)

// MaintenanceLog represents a reported issue on a tank
type MaintenanceLog struct {
	ID          int64
	TankID      int64
	Description string
	Severity    MaintenanceSeverity
	Status      MaintenanceStatus
	ReportedBy  string
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
