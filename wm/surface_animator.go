// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/surface_animator.go
// Summary: Per-animatable leash lifecycle around the animation runner.
// Usage: Creates a proxy surface above the real one, runs the spec on the
// proxy, and restores the real surface once the animation finishes.
// Notes: Cancellation skips the finish callback but still restores the
// surface into the supplied transaction.

package wm

import (
	"github.com/slatewm/slate/internal/anim"
	"github.com/slatewm/slate/surface"
)

// SurfaceAnimator manages the leash for one animatable. At most one
// animation is in flight per animator; starting a new one cancels the old.
type SurfaceAnimator struct {
	svc    *Service
	target Animatable
	leash  *surface.Surface
}

// NewSurfaceAnimator returns an animator bound to target.
func NewSurfaceAnimator(svc *Service, target Animatable) *SurfaceAnimator {
	return &SurfaceAnimator{svc: svc, target: target}
}

// StartAnimation leashes the target's surface and hands the leash to the
// runner. The initial spec frame is applied into t so the very next
// compositor frame shows the starting state. onFinish runs with the
// service lock held and only on natural completion.
//
// A torn-down target (invalid surface) makes this a silent no-op, as does
// leash allocation failing twice: the animation is skipped and the caller's
// state machine proceeds without it.
func (a *SurfaceAnimator) StartAnimation(t *surface.Transaction, spec anim.Spec, onFinish func()) {
	a.svc.assertHeld()
	real := a.target.Surface()
	if !real.Valid() {
		return
	}
	a.cancelLocked(t)

	leash, err := surface.CreateSurfaceRetry(a.svc.comp, real.Name()+"-leash", a.target.SurfaceWidth(), a.target.SurfaceHeight())
	if err != nil {
		a.svc.logger.Printf("wm: leash for %q failed: %v", real.Name(), err)
		return
	}
	a.leash = leash

	t.Reparent(leash, a.target.ParentSurface())
	t.SetSize(leash, a.target.SurfaceWidth(), a.target.SurfaceHeight())
	t.Show(leash)
	t.Reparent(real, leash)
	a.target.OnLeashCreated(t, leash)

	started := leash
	a.svc.runner.Start(spec, leash, t, func() {
		a.svc.Lock()
		defer a.svc.Unlock()
		if a.leash != started {
			// Superseded while the callback was in flight.
			return
		}
		finishT := a.target.PendingTransaction()
		a.detachLocked(finishT)
		// onFinish runs before the commit so its ops land in the same
		// frame as the leash teardown; no intermediate state shows.
		if onFinish != nil {
			onFinish()
		}
		a.target.CommitPendingTransaction()
	})
}

// Cancel tears the in-flight animation down into t. The finish callback
// will not fire.
func (a *SurfaceAnimator) Cancel(t *surface.Transaction) {
	a.svc.assertHeld()
	a.cancelLocked(t)
}

func (a *SurfaceAnimator) cancelLocked(t *surface.Transaction) {
	if a.leash == nil {
		return
	}
	a.svc.runner.Cancel(a.leash)
	a.detachLocked(t)
}

// detachLocked restores the real surface under its original parent and
// destroys the leash. Caller holds the service lock.
func (a *SurfaceAnimator) detachLocked(t *surface.Transaction) {
	if a.leash == nil {
		return
	}
	if real := a.target.Surface(); real.Valid() && t != nil {
		t.Reparent(real, a.target.ParentSurface())
	}
	if t != nil {
		a.target.OnLeashLost(t)
	}
	a.svc.comp.ReleaseSurface(a.leash)
	a.leash = nil
}

// IsAnimating reports whether a leash is live.
func (a *SurfaceAnimator) IsAnimating() bool {
	return a.leash != nil
}

// Leash returns the current proxy surface, or nil.
func (a *SurfaceAnimator) Leash() *surface.Surface {
	return a.leash
}
