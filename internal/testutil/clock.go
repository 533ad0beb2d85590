// Package testutil provides deterministic time and identifier sources for
// tests of the calendar store.
package testutil

import (
	"sync"
	"time"
)

// StepClock is a thread-safe wall clock for tests. Every call to Now
// returns the previous instant advanced by a fixed step, so rows inserted
// in sequence get distinct, predictable timestamps.
type StepClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	calls int64
}

// NewStepClock creates a clock whose first reading is start.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{start: start.UTC(), step: step}
}

// Now returns the next reading.
//
// Monotonic: readings never decrease for a non-negative step.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.calls) * c.step)
	c.calls++
	return t
}

// Calls returns how many readings were taken.
func (c *StepClock) Calls() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Reset rewinds the clock so the next reading is start again.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = 0
}
