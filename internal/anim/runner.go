// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/anim/runner.go
// Summary: Frame-driven animation runner decoupled from the wm lock domain.
// Usage: The wm service enqueues animations; the runner steps them on the
// frame clock's goroutine and coalesces all surface updates into one
// transaction per tick.
// Notes: Lock order is mu before cancelMu, never the reverse. Finish
// callbacks are dispatched on a worker goroutine, never inline in a tick.

package anim

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/slatewm/slate/surface"
)

// animation is one registered animation instance. The surface's identity is
// the registry key: at most one animation may run per surface, starting a
// new one implicitly cancels the old.
type animation struct {
	spec     Spec
	surf     *surface.Surface
	onFinish func()

	startTime time.Time // zero until promoted to running
	fresh     bool      // true until the first running tick has stepped it

	// cancelled is guarded by Runner.cancelMu, not by Runner.mu, so a
	// cancel request racing the frame callback never deadlocks on the
	// registry lock.
	cancelled bool
}

// Stats is a point-in-time snapshot of runner activity.
type Stats struct {
	Pending   int
	Running   int
	Started   int64
	Finished  int64
	Cancelled int64
	Frames    int64
	Commits   int64
}

// Runner steps all active animations at frame cadence and commits their
// surface updates as a single transaction per tick, so concurrently
// animating surfaces always land in the same compositor frame.
type Runner struct {
	clock surface.FrameClock
	comp  surface.Compositor

	mu             sync.Mutex
	pending        map[uuid.UUID]*animation
	running        map[uuid.UUID]*animation
	frameScheduled bool
	closed         bool

	cancelMu sync.Mutex

	// txn is only ever touched from frame callbacks, which the clock
	// delivers serially.
	txn *surface.Transaction

	finishCh chan func()
	dispatch func(fn func())

	started   atomic.Int64
	finished  atomic.Int64
	cancelled atomic.Int64
	frames    atomic.Int64
	commits   atomic.Int64
}

// NewRunner creates a runner stepping on clock and committing to comp. The
// finish-callback worker goroutine starts immediately.
func NewRunner(clock surface.FrameClock, comp surface.Compositor) *Runner {
	r := &Runner{
		clock:    clock,
		comp:     comp,
		pending:  make(map[uuid.UUID]*animation),
		running:  make(map[uuid.UUID]*animation),
		txn:      surface.NewTransaction(),
		finishCh: make(chan func(), 16),
	}
	r.dispatch = func(fn func()) { r.finishCh <- fn }
	go func() {
		for fn := range r.finishCh {
			fn()
		}
	}()
	return r
}

// SetCallbackExecutor replaces the worker-goroutine dispatch for finish
// callbacks. Tests use this to run callbacks deterministically. Must be
// called before any animation is started.
func (r *Runner) SetCallbackExecutor(exec func(fn func())) {
	r.dispatch = exec
}

// Close stops the finish-callback worker. The runner must be idle.
func (r *Runner) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.finishCh)
	}
	r.mu.Unlock()
}

// Start registers an animation on surf and immediately applies spec at
// elapsed=0 into initialTxn, so the caller's already-open transaction shows
// the starting state without waiting a frame. Any animation already
// targeting surf is implicitly cancelled. A torn-down surface is a silent
// no-op. onFinish fires only on natural completion, never on cancellation.
func (r *Runner) Start(spec Spec, surf *surface.Surface, initialTxn *surface.Transaction, onFinish func()) {
	if !surf.Valid() {
		return
	}
	a := &animation{spec: spec, surf: surf, onFinish: onFinish, fresh: true}

	r.mu.Lock()
	r.cancelLocked(surf.ID())
	r.pending[surf.ID()] = a
	r.scheduleFrameLocked()
	r.mu.Unlock()

	r.started.Add(1)
	if initialTxn != nil {
		spec.Apply(initialTxn, surf, 0)
	}
}

// Cancel removes any animation targeting surf. A pending animation is
// simply deregistered; a running one is marked cancelled and one final
// commit is scheduled to flush in-flight state. The finish callback never
// fires for a cancelled animation.
func (r *Runner) Cancel(surf *surface.Surface) {
	if surf == nil {
		return
	}
	r.mu.Lock()
	flushed := r.cancelLocked(surf.ID())
	if flushed {
		r.scheduleFrameLocked()
	}
	r.mu.Unlock()
}

// cancelLocked removes the animation registered for id, if any. Returns
// true when a running animation was cancelled and a flush commit is owed.
// Caller holds r.mu.
func (r *Runner) cancelLocked(id uuid.UUID) bool {
	if _, ok := r.pending[id]; ok {
		delete(r.pending, id)
		r.cancelled.Add(1)
		return false
	}
	a, ok := r.running[id]
	if !ok {
		return false
	}
	delete(r.running, id)
	r.cancelMu.Lock()
	a.cancelled = true
	r.cancelMu.Unlock()
	r.cancelled.Add(1)
	return true
}

// IsAnimating reports whether surf has a pending or running animation.
func (r *Runner) IsAnimating(surf *surface.Surface) bool {
	if surf == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, p := r.pending[surf.ID()]
	_, ru := r.running[surf.ID()]
	return p || ru
}

func (r *Runner) scheduleFrameLocked() {
	if r.frameScheduled {
		return
	}
	r.frameScheduled = true
	r.clock.RequestFrame(r.step)
}

// step is the per-frame tick, running on the clock's goroutine outside the
// wm lock domain.
func (r *Runner) step(frameTime time.Time) {
	r.frames.Add(1)

	r.mu.Lock()
	r.frameScheduled = false
	for id, a := range r.pending {
		delete(r.pending, id)
		a.startTime = frameTime
		r.running[id] = a
	}
	active := make([]*animation, 0, len(r.running))
	for _, a := range r.running {
		active = append(active, a)
	}
	r.mu.Unlock()

	interval := r.clock.FrameInterval()
	var done []*animation
	for _, a := range active {
		if !a.surf.Valid() {
			// Torn down mid-animation: drop it, no callback, no ops.
			r.mu.Lock()
			delete(r.running, a.surf.ID())
			r.mu.Unlock()
			continue
		}
		elapsed := frameTime.Sub(a.startTime)
		if elapsed >= a.spec.Duration() {
			a.spec.Apply(r.txn, a.surf, a.spec.Duration())
			done = append(done, a)
			continue
		}
		if a.fresh && elapsed < interval {
			// elapsed=0 was already applied by Start; skip the first
			// frame rather than re-rendering the starting state.
			a.fresh = false
			continue
		}
		a.fresh = false
		a.spec.Apply(r.txn, a.surf, elapsed)
	}

	if !r.txn.Empty() {
		r.txn.Apply(r.comp)
		r.commits.Add(1)
	}

	for _, a := range done {
		r.mu.Lock()
		delete(r.running, a.surf.ID())
		r.mu.Unlock()

		// Last-moment cancellation check: finish and cancel paths are
		// mutually exclusive, whichever wins the race.
		r.cancelMu.Lock()
		cancelled := a.cancelled
		r.cancelMu.Unlock()
		if cancelled || a.onFinish == nil {
			continue
		}
		r.finished.Add(1)
		r.dispatch(a.onFinish)
	}

	r.mu.Lock()
	if len(r.running) > 0 || len(r.pending) > 0 {
		r.scheduleFrameLocked()
	}
	r.mu.Unlock()
}

// Stats returns a snapshot of runner activity.
func (r *Runner) Stats() Stats {
	r.mu.Lock()
	pending, running := len(r.pending), len(r.running)
	r.mu.Unlock()
	return Stats{
		Pending:   pending,
		Running:   running,
		Started:   r.started.Load(),
		Finished:  r.finished.Load(),
		Cancelled: r.cancelled.Load(),
		Frames:    r.frames.Load(),
		Commits:   r.commits.Load(),
	}
}
