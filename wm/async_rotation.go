// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/async_rotation.go
// Summary: Hides non-activity windows across a display rotation and fades
// them back in once redrawn, gated on the start transaction's commit.
// Usage: Construct with the windows to hide, call Hide, register the
// commit gate with SetupStartTransaction, report redraws via OnWindowDrawn.
// Notes: A window only fades in after BOTH its redraw and the compositor's
// commit confirmation; the other order would flash stale content.

package wm

import (
	"time"

	"github.com/slatewm/slate/surface"
)

type rotationState int

const (
	rotHiding rotationState = iota
	rotWaitingCommit
	rotShowing
	rotDone
)

func (s rotationState) String() string {
	switch s {
	case rotHiding:
		return "Hiding"
	case rotWaitingCommit:
		return "WaitingForStartTransactionCommit"
	case rotShowing:
		return "ShowingIncrementally"
	case rotDone:
		return "Done"
	default:
		return "UnknownRotationState"
	}
}

// AsyncRotationController is a one-shot state machine for a single
// rotation. The target registry maps each hidden window to its current
// animation leash; it only ever shrinks, and an empty registry means done.
type AsyncRotationController struct {
	svc     *Service
	fade    *FadeController
	targets map[*WindowToken]*surface.Surface

	state     rotationState
	committed bool
	covered   bool // a rotation screenshot hides everything already
	timedOut  bool

	timer     *time.Timer
	onTimeout func()
}

// NewAsyncRotationController captures the windows that must be hidden for
// this rotation. covered indicates a full-screen rotation screenshot is in
// place, in which case hiding is instant rather than a fade. Caller holds
// the service lock.
func NewAsyncRotationController(svc *Service, windows []*WindowToken, covered bool) *AsyncRotationController {
	svc.assertHeld()
	r := &AsyncRotationController{
		svc:     svc,
		fade:    NewFadeController(svc),
		targets: make(map[*WindowToken]*surface.Surface, len(windows)),
		state:   rotHiding,
		covered: covered,
	}
	for _, tok := range windows {
		if tok.removed {
			continue
		}
		r.targets[tok] = nil
		tok := tok
		tok.addDetachHook(func() {
			// Token torn down mid-rotation: drop it from the registry
			// so the controller can still complete.
			if _, ok := r.targets[tok]; ok {
				delete(r.targets, tok)
				r.maybeFinishLocked()
			}
		})
	}
	return r
}

// SetTimeoutHandler registers fn to run (under the service lock) if the
// timeout forces completion. Caller holds the service lock.
func (r *AsyncRotationController) SetTimeoutHandler(fn func()) {
	r.svc.assertHeld()
	r.onTimeout = fn
}

// Hide fades every target out (or snaps them hidden when a screenshot
// covers the display), records their leashes, and arms the completion
// timeout. Caller holds the service lock.
func (r *AsyncRotationController) Hide(t *surface.Transaction) {
	r.svc.assertHeld()
	if r.state != rotHiding {
		return
	}
	for tok := range r.targets {
		tok.drawn = false
		r.fade.FadeOut(t, tok, r.covered)
		r.targets[tok] = r.fade.Leash(tok)
	}
	r.state = rotWaitingCommit

	timeout := r.svc.cfg.RotationTimeout.Duration
	r.timer = time.AfterFunc(timeout, func() {
		r.svc.Lock()
		defer r.svc.Unlock()
		r.forceCompleteLocked()
	})
}

// SetupStartTransaction registers the commit-confirmation gate on the
// rotation's start transaction. Until the compositor confirms that frame,
// no window may fade in, no matter how early it redraws. Caller holds the
// service lock.
func (r *AsyncRotationController) SetupStartTransaction(t *surface.Transaction) {
	r.svc.assertHeld()
	t.AddCommittedListener(func() {
		r.svc.Lock()
		defer r.svc.Unlock()
		if r.state == rotDone {
			return
		}
		r.committed = true
		if r.state == rotWaitingCommit {
			r.state = rotShowing
		}
		for tok := range r.targets {
			if tok.drawn {
				r.showLocked(tok)
			}
		}
	})
}

// OnWindowDrawn reports that tok has redrawn content for the new
// orientation. The fade-in starts only once the start transaction is also
// committed. Caller holds the service lock.
func (r *AsyncRotationController) OnWindowDrawn(tok *WindowToken) {
	r.svc.assertHeld()
	if _, ok := r.targets[tok]; !ok {
		return
	}
	tok.drawn = true
	r.showLocked(tok)
}

func (r *AsyncRotationController) showLocked(tok *WindowToken) {
	if r.state == rotDone || !r.committed || !tok.drawn {
		return
	}
	if _, ok := r.targets[tok]; !ok {
		return
	}
	// A fade-out still in flight is implicitly cancelled by the fade-in.
	r.fade.FadeIn(tok.pending, tok, func() {
		r.onShown(tok)
	})
	r.targets[tok] = r.fade.Leash(tok)
	tok.pending.Apply(r.svc.comp)
}

// onShown runs with the service lock held when a token's fade-in finishes.
func (r *AsyncRotationController) onShown(tok *WindowToken) {
	if _, ok := r.targets[tok]; !ok {
		return
	}
	delete(r.targets, tok)
	r.maybeFinishLocked()
}

func (r *AsyncRotationController) maybeFinishLocked() {
	if r.state == rotDone || len(r.targets) > 0 {
		return
	}
	r.completeLocked()
}

func (r *AsyncRotationController) completeLocked() {
	r.state = rotDone
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// forceCompleteLocked is the timeout path: whatever never redrew is
// snapped visible so the display cannot stay half-hidden forever.
func (r *AsyncRotationController) forceCompleteLocked() {
	if r.state == rotDone {
		return
	}
	for tok := range r.targets {
		r.fade.ShowInstantly(tok.pending, tok)
		tok.pending.Apply(r.svc.comp)
		delete(r.targets, tok)
	}
	r.timedOut = true
	r.completeLocked()
	r.svc.logger.Printf("wm: rotation timed out, force-showed remaining windows")
	if r.onTimeout != nil {
		r.onTimeout()
	}
}

// IsDone reports whether the controller reached its terminal state.
func (r *AsyncRotationController) IsDone() bool {
	r.svc.assertHeld()
	return r.state == rotDone
}

// TimedOut reports whether completion was forced by the timeout.
func (r *AsyncRotationController) TimedOut() bool {
	r.svc.assertHeld()
	return r.timedOut
}

// Remaining reports how many windows are still hidden.
func (r *AsyncRotationController) Remaining() int {
	r.svc.assertHeld()
	return len(r.targets)
}
