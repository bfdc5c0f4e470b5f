package testutil

import (
	"sync"
	"time"
)

// Epoch is the default instant of test clocks.
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// FixedClock always reports the same instant.
//
// Thread-safety: FixedClock is immutable and safe for concurrent use.
type FixedClock struct {
	t time.Time
}

// NewFixedClock returns a clock stopped at t. A zero t means Epoch.
func NewFixedClock(t time.Time) *FixedClock {
	if t.IsZero() {
		t = Epoch
	}
	return &FixedClock{t: t}
}

// Now returns the fixed instant.
func (c *FixedClock) Now() time.Time {
	return c.t
}

// SteppingClock advances by a fixed step on every reading.
//
// The first call to Now() returns the start instant. Reset rewinds the clock
// so the same test can run twice with identical timestamps.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SteppingClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	n     int64
}

// NewSteppingClock returns a clock starting at Epoch that advances by step.
func NewSteppingClock(step time.Duration) *SteppingClock {
	return &SteppingClock{start: Epoch, step: step}
}

// Now returns the current instant and advances the clock.
func (c *SteppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.n) * c.step)
	c.n++
	return t
}

// Readings returns how many times Now has been called.
func (c *SteppingClock) Readings() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Reset rewinds the clock to its start.
func (c *SteppingClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n = 0
}
