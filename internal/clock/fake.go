package clock

import "time"

// FakeClock is a Clock tests can step manually. Instants are pinned in
// UTC so session expiry arithmetic stays deterministic.
type FakeClock struct {
	current time.Time
}

// NewFakeClock pins the clock at the given instant.
func NewFakeClock(at time.Time) *FakeClock {
	return &FakeClock{current: at.UTC()}
}

// Now returns the pinned instant.
func (f *FakeClock) Now() time.Time { return f.current }

// Advance moves the clock forward, or backward with a negative duration.
func (f *FakeClock) Advance(d time.Duration) { f.current = f.current.Add(d) }
