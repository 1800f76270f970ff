// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/anim/spec.go
// Summary: Animation specs: pure functions of elapsed time producing surface ops.
// Usage: Handed to the Runner; also applied at elapsed=0 into the caller's
// open transaction so the starting state lands in the very next frame.
// Notes: Specs are immutable values. Apply must be safe at elapsed=0 and
// idempotent for elapsed >= Duration().

package anim

import (
	"math"
	"time"

	"github.com/slatewm/slate/surface"
)

// Spec is a stateless, replayable description of an animation. The runner
// owns all timing; a spec only ever maps elapsed time to transaction ops.
type Spec interface {
	Duration() time.Duration
	Apply(t *surface.Transaction, s *surface.Surface, elapsed time.Duration)
}

// progress clamps elapsed/duration into [0,1]. A zero duration is complete
// immediately.
func progress(elapsed, duration time.Duration) float32 {
	if duration <= 0 || elapsed >= duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float32(elapsed) / float32(duration)
}

func lerp(from, to, p float32) float32 {
	return from + (to-from)*p
}

// Fade interpolates a surface's alpha. Used by the fade controller and the
// rotation controller.
type Fade struct {
	From, To float32
	Dur      time.Duration
	Easing   EasingFunc
}

func (f Fade) Duration() time.Duration { return f.Dur }

func (f Fade) Apply(t *surface.Transaction, s *surface.Surface, elapsed time.Duration) {
	p := progress(elapsed, f.Dur)
	easing := f.Easing
	if easing == nil {
		easing = EaseSmoothstep
	}
	t.SetAlpha(s, lerp(f.From, f.To, easing(p)))
}

// Dim is an alpha lerp without easing, matching how dim layers fade in and
// out behind their owning container.
type Dim struct {
	From, To float32
	Dur      time.Duration
}

func (d Dim) Duration() time.Duration { return d.Dur }

func (d Dim) Apply(t *surface.Transaction, s *surface.Surface, elapsed time.Duration) {
	t.SetAlpha(s, lerp(d.From, d.To, progress(elapsed, d.Dur)))
}

// Move interpolates a surface's position.
type Move struct {
	FromX, FromY int
	ToX, ToY     int
	Dur          time.Duration
	Easing       EasingFunc
}

func (m Move) Duration() time.Duration { return m.Dur }

func (m Move) Apply(t *surface.Transaction, s *surface.Surface, elapsed time.Duration) {
	easing := m.Easing
	if easing == nil {
		easing = EaseSmoothstep
	}
	p := easing(progress(elapsed, m.Dur))
	x := m.FromX + int(float32(m.ToX-m.FromX)*p)
	y := m.FromY + int(float32(m.ToY-m.FromY)*p)
	t.SetPosition(s, x, y)
}

// Rotate interpolates a rotation transform, in degrees.
type Rotate struct {
	FromDeg, ToDeg float64
	Dur            time.Duration
}

func (r Rotate) Duration() time.Duration { return r.Dur }

func (r Rotate) Apply(t *surface.Transaction, s *surface.Surface, elapsed time.Duration) {
	p := float64(progress(elapsed, r.Dur))
	rad := (r.FromDeg + (r.ToDeg-r.FromDeg)*p) * math.Pi / 180
	sin, cos := math.Sincos(rad)
	t.SetMatrix(s, surface.Matrix{
		ScaleX: float32(cos), SkewX: float32(-sin),
		SkewY: float32(sin), ScaleY: float32(cos),
	})
}
