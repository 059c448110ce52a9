package engine

import (
	"sync"
	"time"
)

// ManualClock is a TimeProvider that only moves when told to, for tests and replays
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock starts the clock at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set jumps to t
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AdvanceToNextMinute moves to the next wall-clock minute boundary and returns it
func (c *ManualClock) AdvanceToNextMinute() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(untilNextMinute(c.now))
	return c.now
}
