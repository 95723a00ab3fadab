package domain

import "sort"

// TankOccupancy maps a tank id to the occupied intervals blocking it
// within some day window. Derived from appointments via BuildOccupancy;
// valid only for the snapshot it was built from
type TankOccupancy map[int64][]Interval

// BuildOccupancy derives per-tank occupied intervals from appointments.
// Only appointments whose status is in blockingStatuses contribute; each
// contributes its OccupiedInterval (session + cleanup), never the raw
// session interval
func BuildOccupancy(appointments []*Appointment, blockingStatuses []AppointmentStatus) TankOccupancy {
	occupancy := make(TankOccupancy)

	for _, appt := range appointments {
		if !appt.Blocks(blockingStatuses) {
			continue
		}
		occupancy[appt.TankID] = append(occupancy[appt.TankID], appt.OccupiedInterval())
	}

	return occupancy
}

// IsTankFree returns true iff none of the tank's occupied intervals
// overlaps the candidate interval
func (o TankOccupancy) IsTankFree(tankID int64, candidate Interval) bool {
	for _, occupied := range o[tankID] {
		if occupied.Overlaps(candidate) {
			return false
		}
	}
	return true
}

// FindFreeTank returns the first bookable tank (in ascending id order) that
// is free for the candidate interval, or nil if none is.
// Selection is deterministic for a fixed snapshot: for the same tanks and
// occupancy the same tank is always returned
func (o TankOccupancy) FindFreeTank(tanks []*Tank, candidate Interval) *Tank {
	ordered := make([]*Tank, 0, len(tanks))
	for _, tank := range tanks {
		if tank.Bookable() {
			ordered = append(ordered, tank)
		}
	}

	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, tank := range ordered {
		if o.IsTankFree(tank.ID, candidate) {
			return tank
		}
	}

	return nil
}

// BookableTanks filters the given tanks down to those eligible for future
// booking consideration (active and not in maintenance)
func BookableTanks(tanks []*Tank) []*Tank {
	result := make([]*Tank, 0, len(tanks))
	for _, tank := range tanks {
		if tank.Bookable() {
			result = append(result, tank)
		}
	}
	return result
}
