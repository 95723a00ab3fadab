package domain

import "time"

// Interval represents a half-open time interval [Start, End)
// All scheduling math in the service is built on this type
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval creates an interval starting at start and lasting the given number of minutes
func NewInterval(start time.Time, minutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(minutes) * time.Minute),
	}
}

// Overlaps returns true iff the two intervals actually intersect.
// Touching intervals (a.End == b.Start) do NOT overlap - a cleanup block
// that ends exactly when the next slot starts does not conflict with it
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains returns true if t lies within the interval (Start inclusive, End exclusive)
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration returns the length of the interval
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Extend returns a copy of the interval with End shifted forward by the given number of minutes
func (i Interval) Extend(minutes int) Interval {
	return Interval{
		Start: i.Start,
		End:   i.End.Add(time.Duration(minutes) * time.Minute),
	}
}

// IsValid returns true if the interval has positive length
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}
