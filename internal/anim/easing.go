// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/anim/easing.go
// Summary: Easing functions shared by every animation spec.
// Usage: Specs map clamped progress [0,1] through an EasingFunc before
// interpolating.

package anim

// EasingFunc maps animation progress [0,1] to an eased value [0,1].
type EasingFunc func(t float32) float32

var (
	// EaseLinear - constant speed, no easing.
	EaseLinear EasingFunc = func(t float32) float32 { return t }

	// EaseSmoothstep - smooth S-curve, the default for window animations.
	EaseSmoothstep EasingFunc = func(t float32) float32 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseSmootherstep - S-curve with zero derivatives at both ends.
	EaseSmootherstep EasingFunc = func(t float32) float32 {
		return t * t * t * (t*(t*6.0-15.0) + 10.0)
	}

	// EaseInQuad - slow start, accelerating.
	EaseInQuad EasingFunc = func(t float32) float32 {
		return t * t
	}

	// EaseOutQuad - fast start, decelerating.
	EaseOutQuad EasingFunc = func(t float32) float32 {
		return t * (2.0 - t)
	}

	// EaseInOutQuad - quadratic ease-in-out.
	EaseInOutQuad EasingFunc = func(t float32) float32 {
		if t < 0.5 {
			return 2.0 * t * t
		}
		return -1.0 + (4.0-2.0*t)*t
	}

	// EaseOutCubic - cubic ease-out.
	EaseOutCubic EasingFunc = func(t float32) float32 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}
)
