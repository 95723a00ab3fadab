package domain

import "time"

// SlotReason explains why a slot is unavailable
type SlotReason string

const (
	ReasonBooked SlotReason = "booked"
)

// TimeSlot represents a candidate start time evaluated for availability.
// Slots are transient - recomputed per request, never persisted
type TimeSlot struct {
	StartTime time.Time
	Available bool
	TankID    *int64     // Танк, который будет назначен при бронировании на это время
	Reason    SlotReason // Причина недоступности (пустая, если слот доступен)
}
