// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: surface/clock.go
// Summary: Manually stepped frame clock for deterministic animation tests.

package surface

import (
	"sync"
	"time"
)

// ManualClock is a FrameClock stepped explicitly by the caller. Tick
// advances time and delivers all pending frame callbacks serially on the
// calling goroutine, which stands in for the dedicated animation thread.
type ManualClock struct {
	mu       sync.Mutex
	interval time.Duration
	now      time.Time
	pending  []func(time.Time)
}

// NewManualClock returns a clock with the given nominal frame interval.
func NewManualClock(interval time.Duration) *ManualClock {
	return &ManualClock{
		interval: interval,
		now:      time.Unix(0, 0),
	}
}

func (c *ManualClock) RequestFrame(fn func(frameTime time.Time)) {
	c.mu.Lock()
	c.pending = append(c.pending, fn)
	c.mu.Unlock()
}

func (c *ManualClock) FrameInterval() time.Duration {
	return c.interval
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Tick advances the clock by d and runs every callback that was pending
// before the tick. Callbacks scheduling new frames land in the next tick.
func (c *ManualClock) Tick(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, fn := range pending {
		fn(now)
	}
}

// Advance is Tick by one nominal frame interval.
func (c *ManualClock) Advance() {
	c.Tick(c.interval)
}
