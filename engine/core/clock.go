package core

import "time"

type Clock struct {
	startTime time.Time
	lastTick  time.Time
	now       func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.now()
	c.lastTick = c.startTime
}

// Stops the provided clock.
func (c *Clock) Stop() {
	c.startTime = time.Time{}
}

// Tick returns the time elapsed since the previous tick (or since Start).
// It returns 0 on a clock that has not been started.
func (c *Clock) Tick() time.Duration {
	if c.startTime.IsZero() {
		return 0
	}
	now := c.now()
	dt := now.Sub(c.lastTick)
	c.lastTick = now
	return dt
}

// Elapsed returns the time since Start.
func (c *Clock) Elapsed() time.Duration {
	if c.startTime.IsZero() {
		return 0
	}
	return c.now().Sub(c.startTime)
}
