// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/animatable.go
// Summary: Capability interface for everything the animation system can drive.
// Usage: Implemented by WindowContainer, the Dimmer's dim layers, and the
// fade controller's per-token wrappers. The set is closed on purpose.

package wm

import (
	"github.com/slatewm/slate/internal/anim"
	"github.com/slatewm/slate/surface"
)

// Animatable is the capability contract a container type must expose to
// host a managed animation.
type Animatable interface {
	// PendingTransaction returns the container's open transaction,
	// constructed under the service lock and flushed by
	// CommitPendingTransaction.
	PendingTransaction() *surface.Transaction
	CommitPendingTransaction()

	// OnLeashCreated and OnLeashLost bracket the lifetime of the
	// temporary proxy surface carrying an animation's transform.
	OnLeashCreated(t *surface.Transaction, leash *surface.Surface)
	OnLeashLost(t *surface.Transaction)

	Surface() *surface.Surface
	ParentSurface() *surface.Surface
	SurfaceWidth() int
	SurfaceHeight() int
}

// startAlpha runs an alpha-only animation directly on the animatable's own
// surface, without a leash. Dim layers use this: their surface exists only
// to carry alpha, so a proxy would be a second surface for nothing. The
// finish callback runs with the service lock held.
func startAlpha(svc *Service, target Animatable, t *surface.Transaction, spec anim.Spec, onFinish func()) {
	svc.assertHeld()
	s := target.Surface()
	if !s.Valid() {
		return
	}
	var wrapped func()
	if onFinish != nil {
		wrapped = func() {
			svc.Lock()
			defer svc.Unlock()
			onFinish()
		}
	}
	svc.runner.Start(spec, s, t, wrapped)
}
