// Package clock abstracts the wall clock so intent record names can be
// generated deterministically in tests.
package clock

import "time"

// StampLayout is the sortable UTC layout used as the prefix of intent record
// file names. Lexical order of stamps equals chronological order.
const StampLayout = "20060102T150405.000000000"

// Clock provides an abstraction for time operations to enable deterministic testing.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Stamp formats the clock's current time with StampLayout in UTC.
func Stamp(c Clock) string {
	return c.Now().UTC().Format(StampLayout)
}

// FakeClock implements Clock with a manually driven time for testing.
// Each call to Now advances the time by Step so consecutive records get
// distinct, ordered stamps.
type FakeClock struct {
	current time.Time
	Step    time.Duration
}

// NewFakeClock creates a new FakeClock starting at t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t}
}

// Now returns the current fake time and then advances it by Step.
func (c *FakeClock) Now() time.Time {
	now := c.current
	c.current = c.current.Add(c.Step)
	return now
}

// Set updates the fake time.
func (c *FakeClock) Set(t time.Time) {
	c.current = t
}

// Advance moves the fake time forward by the given duration.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
