package timekeeper

import "time"

// Clock abstracts the wall clock for deterministic testing.
type Clock interface {
	Now() time.Time
}

// RealClock uses system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when told to.
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (clock *ManualClock) Now() time.Time {
	return clock.now
}

// Advance moves the clock forward by delta.
func (clock *ManualClock) Advance(delta time.Duration) {
	clock.now = clock.now.Add(delta)
}

// Set moves the clock to an absolute instant.
func (clock *ManualClock) Set(now time.Time) {
	clock.now = now
}
