// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeClock initialized to the given time. Time stands
// still until Advance or Set is called.
//
// FakeClock is safe for concurrent use by multiple goroutines.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock for testing.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time

	// step is added to current after every Now call. Zero means
	// time stands still between explicit Advance calls.
	step time.Duration
}

// Now returns the current fake time, then moves the clock forward by
// the auto-advance step if one is set.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Advance moves the clock forward by d. Panics if d is negative.
func (c *FakeClock) Advance(d time.Duration) {
	if d < 0 {
		panic("clock: Advance called with negative duration")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set moves the clock to t, forward or backward.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// AutoAdvance makes every subsequent Now call move the clock forward
// by step after returning. Tests that time an operation bracketed by
// two Now calls use this to observe a fixed, non-zero duration.
func (c *FakeClock) AutoAdvance(step time.Duration) {
	if step < 0 {
		panic("clock: AutoAdvance called with negative step")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = step
}
