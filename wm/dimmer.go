// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/dimmer.go
// Summary: Reconciles translucent dim layers above/below sibling containers.
// Usage: resetDimStates at the start of a composition pass, DimAbove/DimBelow
// while owners assert their dims, UpdateDims as the second half of the pass.
// Notes: Dim surfaces are torn down only from the exit fade's finish
// callback, never synchronously, so a dim never pops off screen.

package wm

import (
	"time"

	"github.com/slatewm/slate/internal/anim"
	"github.com/slatewm/slate/surface"
)

// dimLayer is the Animatable wrapper around one dim surface. It borrows
// the host container's pending transaction; the dim has no transaction
// lifecycle of its own.
type dimLayer struct {
	host *WindowContainer
	surf *surface.Surface
	w, h int
}

func (l *dimLayer) PendingTransaction() *surface.Transaction { return l.host.PendingTransaction() }
func (l *dimLayer) CommitPendingTransaction()                { l.host.CommitPendingTransaction() }
func (l *dimLayer) OnLeashCreated(t *surface.Transaction, leash *surface.Surface) {}
func (l *dimLayer) OnLeashLost(t *surface.Transaction)                            {}
func (l *dimLayer) Surface() *surface.Surface                                     { return l.surf }
func (l *dimLayer) ParentSurface() *surface.Surface                               { return l.host.Surface() }
func (l *dimLayer) SurfaceWidth() int                                             { return l.w }
func (l *dimLayer) SurfaceHeight() int                                            { return l.h }

// dimState tracks one dim between composition passes.
type dimState struct {
	layer *dimLayer
	owner *WindowContainer // nil for an unanchored dim

	requested bool
	visible   bool
	noReset   bool
	alpha     float32
	lastAlpha float32 // alpha last written to the surface

	bounds    surface.Rect
	hasBounds bool
}

// Dimmer owns every dim layer parented to one host container.
type Dimmer struct {
	svc    *Service
	host   *WindowContainer
	states map[*WindowContainer]*dimState
}

// NewDimmer creates a dimmer for host.
func NewDimmer(host *WindowContainer) *Dimmer {
	return &Dimmer{
		svc:    host.svc,
		host:   host,
		states: make(map[*WindowContainer]*dimState),
	}
}

// ResetDimStates begins a composition pass: every non-persistent dim is
// marked unrequested and must be re-asserted this pass to survive.
func (d *Dimmer) ResetDimStates() {
	d.svc.assertHeld()
	for _, st := range d.states {
		if !st.noReset {
			st.requested = false
		}
	}
}

// DimAbove asserts a dim stacked just above owner at the given alpha.
func (d *Dimmer) DimAbove(t *surface.Transaction, owner *WindowContainer, alpha float32) {
	d.dim(t, owner, alpha, 1, false)
}

// DimBelow asserts a dim stacked just below owner at the given alpha.
func (d *Dimmer) DimBelow(t *surface.Transaction, owner *WindowContainer, alpha float32) {
	d.dim(t, owner, alpha, -1, false)
}

// DimAboveNoReset asserts a dim that survives composition passes without
// re-assertion, for dims not tied to a container's lifecycle.
func (d *Dimmer) DimAboveNoReset(t *surface.Transaction, owner *WindowContainer, alpha float32) {
	d.dim(t, owner, alpha, 1, true)
}

func (d *Dimmer) dim(t *surface.Transaction, owner *WindowContainer, alpha float32, rel int, noReset bool) {
	d.svc.assertHeld()
	st := d.states[owner]
	if st == nil {
		surf, err := surface.CreateSurfaceRetry(d.svc.comp, d.host.name+"-dim", 0, 0)
		if err != nil {
			d.svc.logger.Printf("wm: dim surface for %q failed: %v", d.host.name, err)
			return
		}
		st = &dimState{
			layer: &dimLayer{host: d.host, surf: surf},
			owner: owner,
		}
		t.Reparent(surf, d.host.surf)
		d.states[owner] = st
	}
	st.requested = true
	st.noReset = st.noReset || noReset
	st.alpha = alpha
	if owner != nil && owner.surf.Valid() {
		t.SetRelativeLayer(st.layer.surf, owner.surf, rel)
	} else {
		// Unanchored dims sit above everything in the host.
		t.SetLayer(st.layer.surf, 1<<16)
	}
}

// UpdateDims finishes the pass: still-requested dims are sized to bounds
// and faded in if newly visible; unrequested dims start their exit fade and
// leave the live set. Returns true when any dim is still visible, so the
// caller knows another pass is coming.
func (d *Dimmer) UpdateDims(t *surface.Transaction, bounds surface.Rect) bool {
	d.svc.assertHeld()
	anyVisible := false
	for owner, st := range d.states {
		gone := !st.requested || (owner != nil && owner.Removed())
		if gone {
			delete(d.states, owner)
			d.startExit(t, st)
			continue
		}
		anyVisible = true
		if !st.hasBounds || st.bounds != bounds {
			t.SetPosition(st.layer.surf, bounds.X, bounds.Y)
			t.SetSize(st.layer.surf, bounds.W, bounds.H)
			st.bounds = bounds
			st.hasBounds = true
			st.layer.w, st.layer.h = bounds.W, bounds.H
		}
		if !st.visible {
			st.visible = true
			st.lastAlpha = st.alpha
			t.Show(st.layer.surf)
			startAlpha(d.svc, st.layer, t,
				anim.Dim{From: 0, To: st.alpha, Dur: d.durationFor(owner)}, nil)
		} else if st.alpha != st.lastAlpha {
			st.lastAlpha = st.alpha
			t.SetAlpha(st.layer.surf, st.alpha)
		}
	}
	return anyVisible
}

// startExit fades the dim out and releases its surface only once the fade
// completes. A dim that never became visible is released immediately.
func (d *Dimmer) startExit(t *surface.Transaction, st *dimState) {
	surf := st.layer.surf
	if !st.visible || !surf.Valid() {
		d.svc.comp.ReleaseSurface(surf)
		return
	}
	startAlpha(d.svc, st.layer, t,
		anim.Dim{From: st.alpha, To: 0, Dur: d.durationFor(st.owner)},
		func() {
			d.svc.comp.ReleaseSurface(surf)
		})
}

// durationFor picks the fade duration: match the owner's active animation
// when there is one, fall back to the configured default, and snap
// instantly for unanchored dims.
func (d *Dimmer) durationFor(owner *WindowContainer) time.Duration {
	if owner == nil {
		return 0
	}
	if hint := owner.AnimationDurationHint(); hint > 0 {
		return hint
	}
	return d.svc.cfg.DimFade.Duration
}

// HasDims reports whether any dim state is live.
func (d *Dimmer) HasDims() bool {
	d.svc.assertHeld()
	return len(d.states) > 0
}
