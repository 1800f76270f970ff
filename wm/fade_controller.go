// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/fade_controller.go
// Summary: Alpha-only enter/exit animations for window tokens.
// Usage: The rotation controller fades tokens out during a rotation and
// back in once they have redrawn.

package wm

import (
	"github.com/slatewm/slate/internal/anim"
	"github.com/slatewm/slate/surface"
)

// FadeController drives per-token fades through leashed animations.
type FadeController struct {
	svc       *Service
	animators map[*WindowToken]*SurfaceAnimator
}

// NewFadeController returns an empty controller.
func NewFadeController(svc *Service) *FadeController {
	return &FadeController{svc: svc, animators: make(map[*WindowToken]*SurfaceAnimator)}
}

func (f *FadeController) animator(tok *WindowToken) *SurfaceAnimator {
	an := f.animators[tok]
	if an == nil {
		an = NewSurfaceAnimator(f.svc, &tokenFade{tok: tok})
		f.animators[tok] = an
	}
	return an
}

// FadeOut fades the token from fully visible to hidden. When instant is
// set (a screenshot layer already covers the display) the alpha is forced
// to zero in t with no animation at all.
func (f *FadeController) FadeOut(t *surface.Transaction, tok *WindowToken, instant bool) {
	f.svc.assertHeld()
	if tok.removed {
		return
	}
	if instant {
		t.SetAlpha(tok.surf, 0)
		t.Hide(tok.surf)
		return
	}
	dur := f.svc.cfg.TokenFade.Duration
	f.animator(tok).StartAnimation(t, anim.Fade{From: 1, To: 0, Dur: dur}, func() {
		// The fade ran on the leash; pin the real surface hidden in the
		// same commit that tears the leash down.
		ft := tok.PendingTransaction()
		ft.SetAlpha(tok.surf, 0)
		ft.Hide(tok.surf)
	})
}

// FadeIn fades the token back to fully visible. onDone runs with the
// service lock held once the fade naturally completes.
func (f *FadeController) FadeIn(t *surface.Transaction, tok *WindowToken, onDone func()) {
	f.svc.assertHeld()
	if tok.removed {
		return
	}
	t.SetAlpha(tok.surf, 1)
	t.Show(tok.surf)
	dur := f.svc.cfg.TokenFade.Duration
	f.animator(tok).StartAnimation(t, anim.Fade{From: 0, To: 1, Dur: dur}, func() {
		ft := tok.PendingTransaction()
		ft.SetAlpha(tok.surf, 1)
		if onDone != nil {
			onDone()
		}
	})
}

// ShowInstantly cancels any fade and snaps the token visible.
func (f *FadeController) ShowInstantly(t *surface.Transaction, tok *WindowToken) {
	f.svc.assertHeld()
	if an := f.animators[tok]; an != nil {
		an.Cancel(t)
	}
	t.SetAlpha(tok.surf, 1)
	t.Show(tok.surf)
}

// Leash returns the token's current animation leash, or nil.
func (f *FadeController) Leash(tok *WindowToken) *surface.Surface {
	an := f.animators[tok]
	if an == nil {
		return nil
	}
	return an.Leash()
}

// IsFading reports whether the token has a fade in flight.
func (f *FadeController) IsFading(tok *WindowToken) bool {
	an := f.animators[tok]
	return an != nil && an.IsAnimating()
}

// Forget drops the animator for a token that is going away.
func (f *FadeController) Forget(t *surface.Transaction, tok *WindowToken) {
	f.svc.assertHeld()
	if an := f.animators[tok]; an != nil {
		an.Cancel(t)
		delete(f.animators, tok)
	}
}
