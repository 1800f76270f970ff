// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: surface/compositor.go
// Summary: Boundary contracts toward the external compositor and frame timing.
// Usage: The wm and anim packages only ever talk to these interfaces.

package surface

import (
	"errors"
	"time"
)

// ErrNoSurface is returned by CreateSurface when the compositor cannot
// allocate a new buffer. Callers may Reclaim and retry once; a second
// failure is a local condition, never fatal.
var ErrNoSurface = errors.New("surface: compositor out of buffers")

// Compositor is the external display backend. Submit applies one batch of
// operations atomically; the committed callbacks are invoked once the frame
// containing those operations has actually been committed on screen.
type Compositor interface {
	CreateSurface(name string, w, h int) (*Surface, error)
	ReleaseSurface(s *Surface)
	Submit(ops []Op, committed []func())

	// Reclaim asks the compositor to free memory held by released or
	// hidden surfaces so a failed allocation can be retried.
	Reclaim()
}

// FrameClock delivers frame-aligned callbacks. RequestFrame schedules fn to
// run once at the next vsync; callbacks are delivered serially, one at a
// time, on the clock's own goroutine. FrameInterval reports the nominal
// time between frames, used to decide whether a freshly started animation
// may skip stepping on its very first tick.
type FrameClock interface {
	RequestFrame(fn func(frameTime time.Time))
	FrameInterval() time.Duration
}

// CreateSurfaceRetry allocates a surface, reclaiming and retrying once on
// exhaustion. On repeated failure the error is returned to the caller; the
// window simply stays undrawn until the next layout pass.
func CreateSurfaceRetry(c Compositor, name string, w, h int) (*Surface, error) {
	s, err := c.CreateSurface(name, w, h)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrNoSurface) {
		return nil, err
	}
	c.Reclaim()
	return c.CreateSurface(name, w, h)
}
