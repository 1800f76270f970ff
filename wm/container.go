// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/container.go
// Summary: Window containers: the tree nodes animations and dims attach to.
// Usage: All methods require the service lock unless noted otherwise.

package wm

import (
	"time"

	"github.com/slatewm/slate/internal/anim"
	"github.com/slatewm/slate/surface"
)

// WindowContainer is a node in the surface hierarchy. It owns one surface,
// an open pending transaction, and the animator that leashes the surface
// when a managed animation runs.
type WindowContainer struct {
	svc      *Service
	name     string
	parent   *WindowContainer
	children []*WindowContainer

	surf    *surface.Surface
	pending *surface.Transaction

	// width/height are the last sizes actually written into a
	// transaction, so consecutive layout passes with an unchanged size
	// never emit redundant SetSize ops.
	width, height int

	animator *SurfaceAnimator
	animDur  time.Duration

	removed     bool
	detachHooks []func()
}

// CreateContainer allocates a surface for a new container under parent
// (nil for a root). On allocation failure the compositor is asked to
// reclaim once; if that also fails the error is returned and no container
// exists. The caller retries on its next layout pass.
func (s *Service) CreateContainer(name string, parent *WindowContainer, w, h int) (*WindowContainer, error) {
	s.assertHeld()
	surf, err := surface.CreateSurfaceRetry(s.comp, name, w, h)
	if err != nil {
		s.logger.Printf("wm: create %q failed: %v", name, err)
		return nil, err
	}
	c := &WindowContainer{
		svc:     s,
		name:    name,
		parent:  parent,
		surf:    surf,
		pending: surface.NewTransaction(),
		width:   w,
		height:  h,
	}
	c.animator = NewSurfaceAnimator(s, c)
	if parent != nil {
		parent.children = append(parent.children, c)
		c.pending.Reparent(surf, parent.surf)
	}
	c.pending.Show(surf)
	return c, nil
}

// Name returns the container's debug name.
func (c *WindowContainer) Name() string { return c.name }

// PendingTransaction returns the container's open transaction.
func (c *WindowContainer) PendingTransaction() *surface.Transaction {
	c.svc.assertHeld()
	return c.pending
}

// CommitPendingTransaction flushes the open transaction to the compositor.
func (c *WindowContainer) CommitPendingTransaction() {
	c.svc.assertHeld()
	c.pending.Apply(c.svc.comp)
}

func (c *WindowContainer) Surface() *surface.Surface {
	return c.surf
}

func (c *WindowContainer) ParentSurface() *surface.Surface {
	if c.parent == nil {
		return nil
	}
	return c.parent.surf
}

func (c *WindowContainer) SurfaceWidth() int  { return c.width }
func (c *WindowContainer) SurfaceHeight() int { return c.height }

// OnLeashCreated is invoked by the animator once the leash carries the
// container's surface.
func (c *WindowContainer) OnLeashCreated(t *surface.Transaction, leash *surface.Surface) {}

// OnLeashLost is invoked when the leash is torn down and the surface is
// back under its real parent.
func (c *WindowContainer) OnLeashLost(t *surface.Transaction) {}

// Resize records a new size, emitting SetSize only when the size actually
// changed since the last emitted value.
func (c *WindowContainer) Resize(t *surface.Transaction, w, h int) {
	c.svc.assertHeld()
	if w == c.width && h == c.height {
		return
	}
	c.width, c.height = w, h
	t.SetSize(c.surf, w, h)
}

// Move positions the container within its parent.
func (c *WindowContainer) Move(t *surface.Transaction, x, y int) {
	c.svc.assertHeld()
	t.SetPosition(c.surf, x, y)
}

// StartAnimation leashes the container and runs spec on the leash. The
// spec's duration becomes the container's duration hint for attached dims.
// onFinish runs with the service lock held, only on natural completion.
func (c *WindowContainer) StartAnimation(t *surface.Transaction, spec anim.Spec, onFinish func()) {
	c.svc.assertHeld()
	c.animDur = spec.Duration()
	c.animator.StartAnimation(t, spec, func() {
		c.animDur = 0
		if onFinish != nil {
			onFinish()
		}
	})
}

// CancelAnimation tears any in-flight animation down without invoking its
// finish callback.
func (c *WindowContainer) CancelAnimation(t *surface.Transaction) {
	c.svc.assertHeld()
	c.animDur = 0
	c.animator.Cancel(t)
}

// IsAnimating reports whether a managed animation is in flight.
func (c *WindowContainer) IsAnimating() bool {
	return c.animator.IsAnimating()
}

// AnimationDurationHint returns the duration of the active animation, or 0.
// The Dimmer matches dim fades to this so both finish together.
func (c *WindowContainer) AnimationDurationHint() time.Duration {
	if !c.animator.IsAnimating() {
		return 0
	}
	return c.animDur
}

// Animator exposes the container's surface animator.
func (c *WindowContainer) Animator() *SurfaceAnimator {
	return c.animator
}

// addDetachHook registers fn to run when the container is removed.
// Registries tracking this container use it to deregister synchronously.
func (c *WindowContainer) addDetachHook(fn func()) {
	c.detachHooks = append(c.detachHooks, fn)
}

// Removed reports whether the container has been torn down.
func (c *WindowContainer) Removed() bool { return c.removed }

// RemoveImmediately tears the container down: cancels its animation,
// releases its surface, deregisters it from every registry (sync sets,
// detach hooks), and removes its children the same way. Deregistration is
// synchronous; nothing may keep animating a dead container.
func (c *WindowContainer) RemoveImmediately() {
	c.svc.assertHeld()
	if c.removed {
		return
	}
	c.removed = true

	for _, child := range append([]*WindowContainer(nil), c.children...) {
		child.RemoveImmediately()
	}
	c.children = nil

	c.animator.Cancel(c.pending)
	c.pending.Apply(c.svc.comp)
	c.svc.comp.ReleaseSurface(c.surf)

	for _, fn := range c.detachHooks {
		fn()
	}
	c.detachHooks = nil
	c.svc.sync.onParticipantRemoved(c)

	if c.parent != nil {
		siblings := c.parent.children
		for i, sib := range siblings {
			if sib == c {
				c.parent.children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
		c.parent = nil
	}
}
