// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/token.go
// Summary: Window tokens: non-activity windows driven by per-token fades.
// Usage: Status-bar style windows that the rotation controller hides and
// shows around a display rotation.

package wm

import (
	"github.com/slatewm/slate/surface"
)

// WindowToken is a lightweight window identity with its own surface and
// pending transaction, parented to a container.
type WindowToken struct {
	svc    *Service
	name   string
	parent *WindowContainer

	surf    *surface.Surface
	pending *surface.Transaction
	w, h    int

	drawn       bool
	removed     bool
	detachHooks []func()
}

// CreateToken allocates a surface for a new token under parent.
func (s *Service) CreateToken(name string, parent *WindowContainer, w, h int) (*WindowToken, error) {
	s.assertHeld()
	surf, err := surface.CreateSurfaceRetry(s.comp, name, w, h)
	if err != nil {
		s.logger.Printf("wm: create token %q failed: %v", name, err)
		return nil, err
	}
	tok := &WindowToken{
		svc:     s,
		name:    name,
		parent:  parent,
		surf:    surf,
		pending: surface.NewTransaction(),
		w:       w,
		h:       h,
	}
	if parent != nil {
		tok.pending.Reparent(surf, parent.surf)
	}
	tok.pending.Show(surf)
	return tok, nil
}

// Name returns the token's debug name.
func (tok *WindowToken) Name() string { return tok.name }

// Surface returns the token's surface handle.
func (tok *WindowToken) Surface() *surface.Surface { return tok.surf }

// PendingTransaction returns the token's open transaction.
func (tok *WindowToken) PendingTransaction() *surface.Transaction {
	tok.svc.assertHeld()
	return tok.pending
}

// CommitPendingTransaction flushes the token's open transaction.
func (tok *WindowToken) CommitPendingTransaction() {
	tok.svc.assertHeld()
	tok.pending.Apply(tok.svc.comp)
}

// Drawn reports whether the token has redrawn since it was last reset.
func (tok *WindowToken) Drawn() bool { return tok.drawn }

// ClearDrawn resets the redraw flag, e.g. when the display orientation
// changes and existing content becomes stale.
func (tok *WindowToken) ClearDrawn() {
	tok.svc.assertHeld()
	tok.drawn = false
}

// Removed reports whether the token has been torn down.
func (tok *WindowToken) Removed() bool { return tok.removed }

// addDetachHook registers fn to run on teardown, so registries holding the
// token deregister synchronously.
func (tok *WindowToken) addDetachHook(fn func()) {
	tok.detachHooks = append(tok.detachHooks, fn)
}

// RemoveImmediately tears the token down and deregisters it everywhere.
func (tok *WindowToken) RemoveImmediately() {
	tok.svc.assertHeld()
	if tok.removed {
		return
	}
	tok.removed = true
	tok.pending.Apply(tok.svc.comp)
	tok.svc.comp.ReleaseSurface(tok.surf)
	for _, fn := range tok.detachHooks {
		fn()
	}
	tok.detachHooks = nil
}

// tokenFade is the Animatable wrapper the fade controller animates.
type tokenFade struct {
	tok *WindowToken
}

func (f *tokenFade) PendingTransaction() *surface.Transaction { return f.tok.PendingTransaction() }

func (f *tokenFade) CommitPendingTransaction() {
	f.tok.svc.assertHeld()
	f.tok.pending.Apply(f.tok.svc.comp)
}

func (f *tokenFade) OnLeashCreated(t *surface.Transaction, leash *surface.Surface) {}
func (f *tokenFade) OnLeashLost(t *surface.Transaction)                            {}

func (f *tokenFade) Surface() *surface.Surface { return f.tok.surf }

func (f *tokenFade) ParentSurface() *surface.Surface {
	if f.tok.parent == nil {
		return nil
	}
	return f.tok.parent.surf
}

func (f *tokenFade) SurfaceWidth() int  { return f.tok.w }
func (f *tokenFade) SurfaceHeight() int { return f.tok.h }
