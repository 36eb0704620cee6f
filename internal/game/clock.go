package game

import "time"

// Clock supplies the current time to the engine.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. Used by tests and the headless report.
type ManualClock struct {
	t time.Time
}

// NewManualClock starts a clock at t.
func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{t: t}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time { return c.t }

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.t = t
}
