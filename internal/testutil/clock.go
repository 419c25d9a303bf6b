// Package testutil provides deterministic clocks for tests.
package testutil

import (
	"sync"
	"time"
)

// FixedClock returns a predetermined instant, optionally advancing by
// a fixed step on every call. Pinning time keeps entity timestamps
// and golden files stable across runs.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewFixedClock creates a clock pinned at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

// NewSteppingClock creates a clock that starts at t and advances by
// step after every Now call, so successive saves get distinct
// timestamps in a reproducible sequence.
func NewSteppingClock(t time.Time, step time.Duration) *FixedClock {
	return &FixedClock{now: t, step: step}
}

// Now returns the current pinned instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Set repins the clock at t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
