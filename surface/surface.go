// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: surface/surface.go
// Summary: Opaque surface handles composed by the external display backend.
// Usage: Surfaces are allocated through a Compositor and mutated via Transactions.
// Notes: A surface is owned by exactly one animatable at a time; leashes are
// temporary proxy surfaces owned by the animation system.

package surface

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Surface is an opaque handle to a drawable resource owned by the compositor.
// The handle itself carries no pixel state; all mutation goes through
// Transactions. Identity (ID) is the key used by every animation registry.
type Surface struct {
	id       uuid.UUID
	name     string
	released atomic.Bool
}

// NewSurface creates a fresh handle with a unique identity. Compositor
// implementations call this from CreateSurface; tests may call it directly.
func NewSurface(name string) *Surface {
	return &Surface{id: uuid.New(), name: name}
}

// ID returns the surface's unique identity.
func (s *Surface) ID() uuid.UUID {
	return s.id
}

// Name returns the debug name given at creation.
func (s *Surface) Name() string {
	return s.name
}

// Valid reports whether the surface may still be targeted by operations.
// Operations on an invalid surface are dropped silently at Apply time.
func (s *Surface) Valid() bool {
	return s != nil && !s.released.Load()
}

// Release marks the handle dead. Safe to call more than once.
func (s *Surface) Release() {
	if s != nil {
		s.released.Store(true)
	}
}
