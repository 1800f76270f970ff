// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/service.go
// Summary: The global-lock state domain owning all container and sync state.
// Usage: Policy layers take the service lock, mutate containers and pending
// transactions, then release. Animation stepping happens elsewhere.
// Notes: The animation runner's data is reachable only by enqueueing
// requests; its callbacks re-enter through Lock, never inline in a tick.

package wm

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/slatewm/slate/config"
	"github.com/slatewm/slate/internal/anim"
	"github.com/slatewm/slate/surface"
)

// Service owns the single global mutex guarding window-manager state and
// all transaction construction.
type Service struct {
	mu   sync.Mutex
	held atomic.Bool

	comp   surface.Compositor
	clock  surface.FrameClock
	runner *anim.Runner
	cfg    *config.Config
	sync   *SyncEngine
	logger *log.Logger
}

// NewService wires the lock domain to a compositor and frame clock. A nil
// cfg uses the built-in defaults.
func NewService(comp surface.Compositor, clock surface.FrameClock, cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Service{
		comp:   comp,
		clock:  clock,
		cfg:    cfg,
		logger: log.Default(),
	}
	s.runner = anim.NewRunner(clock, comp)
	s.sync = newSyncEngine(s)
	return s
}

// Lock enters the global state domain. Every exported wm operation that is
// documented as "caller holds the service lock" must run between Lock and
// Unlock.
func (s *Service) Lock() {
	s.mu.Lock()
	s.held.Store(true)
}

// Unlock leaves the global state domain.
func (s *Service) Unlock() {
	s.held.Store(false)
	s.mu.Unlock()
}

// assertHeld is a debug guard catching helpers that run outside the lock.
// Best effort: it cannot tell which goroutine holds the mutex, only that
// somebody does.
func (s *Service) assertHeld() {
	if !s.held.Load() {
		panic("wm: service lock not held")
	}
}

// Runner exposes the animation runner for policy layers that start raw
// animations.
func (s *Service) Runner() *anim.Runner {
	return s.runner
}

// Compositor returns the display backend the service commits to.
func (s *Service) Compositor() surface.Compositor {
	return s.comp
}

// SyncEngine returns the transaction barrier engine.
func (s *Service) SyncEngine() *SyncEngine {
	return s.sync
}

// Config returns the service configuration.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// SetLogger replaces the default logger.
func (s *Service) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Close shuts the animation worker down. All animations should have
// completed or been cancelled first.
func (s *Service) Close() {
	s.runner.Close()
}
