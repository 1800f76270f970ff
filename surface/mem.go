// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: surface/mem.go
// Summary: In-memory reference compositor tracking surface state per frame.
// Usage: Backing store for tests and the stress driver; mirrors what a real
// backend would do with submitted operations.

package surface

import (
	"sync"

	"github.com/google/uuid"
)

// State is the accumulated visible state of one surface inside the
// in-memory compositor.
type State struct {
	X, Y     int
	W, H     int
	Alpha    float32
	Visible  bool
	Layer    int
	RelTo    uuid.UUID // zero when stacked absolutely
	RelOff   int
	Parent   uuid.UUID // zero when at the root
	Crop     Rect
	HasCrop  bool
	Matrix   Matrix
	Released bool
}

// MemCompositor applies submitted operations to an in-memory state table.
// Commit confirmation callbacks are queued and fired by FlushCommitted,
// letting tests control exactly when the "frame committed" signal arrives.
type MemCompositor struct {
	mu        sync.Mutex
	limit     int
	surfaces  map[uuid.UUID]*Surface
	states    map[uuid.UUID]*State
	frames    int
	opCount   map[OpKind]int
	queued    []func()
	inlineAck bool
}

// NewMemCompositor returns an empty compositor with no allocation limit.
func NewMemCompositor() *MemCompositor {
	return &MemCompositor{
		surfaces: make(map[uuid.UUID]*Surface),
		states:   make(map[uuid.UUID]*State),
		opCount:  make(map[OpKind]int),
	}
}

// SetLimit caps how many live surfaces may exist at once; 0 means no cap.
func (m *MemCompositor) SetLimit(n int) {
	m.mu.Lock()
	m.limit = n
	m.mu.Unlock()
}

// SetInlineAck makes Submit invoke committed callbacks immediately instead
// of queueing them for FlushCommitted.
func (m *MemCompositor) SetInlineAck(on bool) {
	m.mu.Lock()
	m.inlineAck = on
	m.mu.Unlock()
}

func (m *MemCompositor) CreateSurface(name string, w, h int) (*Surface, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.limit > 0 {
		live := 0
		for _, s := range m.surfaces {
			if s.Valid() {
				live++
			}
		}
		if live >= m.limit {
			return nil, ErrNoSurface
		}
	}
	s := NewSurface(name)
	m.surfaces[s.ID()] = s
	m.states[s.ID()] = &State{W: w, H: h, Alpha: 1, Matrix: Identity}
	return s, nil
}

func (m *MemCompositor) ReleaseSurface(s *Surface) {
	if s == nil {
		return
	}
	s.Release()
	m.mu.Lock()
	if st := m.states[s.ID()]; st != nil {
		st.Released = true
		st.Visible = false
	}
	m.mu.Unlock()
}

// Reclaim drops state for released surfaces, freeing capacity for retries.
func (m *MemCompositor) Reclaim() {
	m.mu.Lock()
	for id, s := range m.surfaces {
		if !s.Valid() {
			delete(m.surfaces, id)
			delete(m.states, id)
		}
	}
	m.mu.Unlock()
}

func (m *MemCompositor) Submit(ops []Op, committed []func()) {
	m.mu.Lock()
	m.frames++
	for _, op := range ops {
		m.opCount[op.Kind]++
		st := m.states[op.Target.ID()]
		if st == nil {
			// Surface created outside this compositor (tests build
			// handles directly); track it from here on.
			st = &State{Alpha: 1, Matrix: Identity}
			m.states[op.Target.ID()] = st
		}
		switch op.Kind {
		case OpShow:
			st.Visible = true
		case OpHide:
			st.Visible = false
		case OpSetAlpha:
			st.Alpha = op.Alpha
		case OpSetPosition:
			st.X, st.Y = op.X, op.Y
		case OpSetSize:
			st.W, st.H = op.W, op.H
		case OpSetCrop:
			st.Crop, st.HasCrop = op.Crop, true
		case OpClearCrop:
			st.HasCrop = false
		case OpSetMatrix:
			st.Matrix = op.Matrix
		case OpSetLayer:
			st.Layer = op.Layer
			st.RelTo = uuid.UUID{}
		case OpSetRelativeLayer:
			if op.Relative != nil {
				st.RelTo = op.Relative.ID()
			}
			st.RelOff = op.Layer
		case OpReparent:
			if op.Relative == nil {
				st.Parent = uuid.UUID{}
			} else {
				st.Parent = op.Relative.ID()
			}
		}
	}
	inline := m.inlineAck
	if !inline {
		m.queued = append(m.queued, committed...)
	}
	m.mu.Unlock()

	if inline {
		for _, fn := range committed {
			fn()
		}
	}
}

// FlushCommitted fires every queued commit confirmation callback, in the
// order the frames were submitted.
func (m *MemCompositor) FlushCommitted() {
	m.mu.Lock()
	queued := m.queued
	m.queued = nil
	m.mu.Unlock()
	for _, fn := range queued {
		fn()
	}
}

// State returns a copy of the tracked state for s.
func (m *MemCompositor) State(s *Surface) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st := m.states[s.ID()]; st != nil {
		return *st
	}
	return State{}
}

// Frames reports how many Submit batches have been received.
func (m *MemCompositor) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

// Ops reports how many operations of the given kind were ever submitted.
func (m *MemCompositor) Ops(kind OpKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opCount[kind]
}
