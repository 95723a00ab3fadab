package domain

import "time"

// Service represents a bookable service (float session, massage, combo)
type Service struct {
	ID                  int64
	Name                string
	Description         *string
	DurationMinutes     int
	SetupCleanupMinutes int
	Price               int64 // Цена в минимальных единицах валюты (центы/копейки)
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
