// Package clock provides time utilities for the application
package clock

import "time"

// Clock provides time functionality. War countdowns and expiry checks
// read time through this interface so tests can control it.
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Fixed is a test clock whose time only moves when told to
type Fixed struct {
	now time.Time
}

// NewFixed returns a clock pinned at the given time
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

// Now returns the pinned time
func (c *Fixed) Now() time.Time {
	return c.now
}

// Advance moves the pinned time forward
func (c *Fixed) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set pins the clock at an absolute time
func (c *Fixed) Set(now time.Time) {
	c.now = now
}
