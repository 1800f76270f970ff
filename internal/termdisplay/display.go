// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/termdisplay/display.go
// Summary: Terminal-cell compositor backend rendering surfaces as rectangles.
// Usage: Demo/stress backend implementing surface.Compositor and
// surface.FrameClock on top of a tcell screen (real or simulation).
// Notes: Commit confirmation callbacks fire after the frame containing
// their operations has been rendered, mirroring a real display pipeline.

package termdisplay

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/slatewm/slate/surface"
)

var palette = []tcell.Color{
	tcell.NewRGBColor(60, 100, 160),
	tcell.NewRGBColor(160, 90, 60),
	tcell.NewRGBColor(80, 140, 80),
	tcell.NewRGBColor(140, 80, 140),
	tcell.NewRGBColor(170, 150, 60),
	tcell.NewRGBColor(70, 140, 150),
}

type layer struct {
	surf    *surface.Surface
	name    string
	x, y    int
	w, h    int
	alpha   float32
	z       int
	relTo   uuid.UUID
	relOff  int
	parent  uuid.UUID
	visible bool
	color   tcell.Color
	seq     int
}

// Display is a Compositor+FrameClock over a tcell screen.
type Display struct {
	screen   tcell.Screen
	interval time.Duration
	limit    int

	mu        sync.Mutex
	layers    map[uuid.UUID]*layer
	seq       int
	frameReqs []func(time.Time)
	acks      []func()

	quit      chan struct{}
	closeOnce sync.Once
}

// New wraps an initialized tcell screen. limit caps surface allocations
// (0 for none); interval is the frame cadence.
func New(screen tcell.Screen, interval time.Duration, limit int) *Display {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &Display{
		screen:   screen,
		interval: interval,
		limit:    limit,
		layers:   make(map[uuid.UUID]*layer),
		quit:     make(chan struct{}),
	}
}

// Run drives the frame loop until Close. Frame callbacks run here, on the
// display's own goroutine, which is the animation-stepping context.
func (d *Display) Run() {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			d.frame(now)
		case <-d.quit:
			return
		}
	}
}

// Step renders one frame immediately; used with simulation screens where
// no loop is running.
func (d *Display) Step(now time.Time) {
	d.frame(now)
}

func (d *Display) frame(now time.Time) {
	d.mu.Lock()
	reqs := d.frameReqs
	d.frameReqs = nil
	d.mu.Unlock()

	for _, fn := range reqs {
		fn(now)
	}

	d.render()

	d.mu.Lock()
	acks := d.acks
	d.acks = nil
	d.mu.Unlock()
	for _, fn := range acks {
		fn()
	}
}

// Close stops the frame loop. The screen itself belongs to the caller.
func (d *Display) Close() {
	d.closeOnce.Do(func() { close(d.quit) })
}

// RequestFrame implements surface.FrameClock.
func (d *Display) RequestFrame(fn func(frameTime time.Time)) {
	d.mu.Lock()
	d.frameReqs = append(d.frameReqs, fn)
	d.mu.Unlock()
}

// FrameInterval implements surface.FrameClock.
func (d *Display) FrameInterval() time.Duration {
	return d.interval
}

// CreateSurface implements surface.Compositor.
func (d *Display) CreateSurface(name string, w, h int) (*surface.Surface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.limit > 0 && len(d.layers) >= d.limit {
		return nil, surface.ErrNoSurface
	}
	s := surface.NewSurface(name)
	d.seq++
	d.layers[s.ID()] = &layer{
		surf:  s,
		name:  name,
		w:     w,
		h:     h,
		alpha: 1,
		color: palette[d.seq%len(palette)],
		seq:   d.seq,
	}
	return s, nil
}

// ReleaseSurface implements surface.Compositor.
func (d *Display) ReleaseSurface(s *surface.Surface) {
	if s == nil {
		return
	}
	s.Release()
	d.mu.Lock()
	delete(d.layers, s.ID())
	d.mu.Unlock()
}

// Reclaim drops layers whose surfaces were released elsewhere.
func (d *Display) Reclaim() {
	d.mu.Lock()
	for id, l := range d.layers {
		if !l.surf.Valid() {
			delete(d.layers, id)
		}
	}
	d.mu.Unlock()
}

// Submit implements surface.Compositor: the batch lands atomically under
// one lock hold, and the committed callbacks fire after the next render.
func (d *Display) Submit(ops []surface.Op, committed []func()) {
	d.mu.Lock()
	for _, op := range ops {
		l := d.layers[op.Target.ID()]
		if l == nil {
			continue
		}
		switch op.Kind {
		case surface.OpShow:
			l.visible = true
		case surface.OpHide:
			l.visible = false
		case surface.OpSetAlpha:
			l.alpha = op.Alpha
		case surface.OpSetPosition:
			l.x, l.y = op.X, op.Y
		case surface.OpSetSize:
			l.w, l.h = op.W, op.H
		case surface.OpSetLayer:
			l.z = op.Layer
			l.relTo = uuid.UUID{}
		case surface.OpSetRelativeLayer:
			if op.Relative != nil {
				l.relTo = op.Relative.ID()
				l.relOff = op.Layer
			}
		case surface.OpReparent:
			if op.Relative == nil {
				l.parent = uuid.UUID{}
			} else {
				l.parent = op.Relative.ID()
			}
		case surface.OpSetCrop, surface.OpClearCrop, surface.OpSetMatrix:
			// Not representable on a cell grid; accepted and ignored.
		}
	}
	d.acks = append(d.acks, committed...)
	d.mu.Unlock()
}

// absPos resolves a layer's position through its parent chain.
func (d *Display) absPos(l *layer) (int, int) {
	x, y := l.x, l.y
	p := l.parent
	for depth := 0; p != (uuid.UUID{}) && depth < 16; depth++ {
		pl := d.layers[p]
		if pl == nil {
			break
		}
		x += pl.x
		y += pl.y
		p = pl.parent
	}
	return x, y
}

// effectiveZ resolves relative stacking against the sibling's own z.
func (d *Display) effectiveZ(l *layer) int {
	if l.relTo != (uuid.UUID{}) {
		if sib := d.layers[l.relTo]; sib != nil {
			return sib.z + l.relOff
		}
	}
	return l.z
}

func (d *Display) render() {
	d.mu.Lock()
	ordered := make([]*layer, 0, len(d.layers))
	for _, l := range d.layers {
		if l.visible && l.alpha > 0.01 && l.surf.Valid() {
			ordered = append(ordered, l)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		zi, zj := d.effectiveZ(ordered[i]), d.effectiveZ(ordered[j])
		if zi != zj {
			return zi < zj
		}
		return ordered[i].seq < ordered[j].seq
	})

	d.screen.Clear()
	for _, l := range ordered {
		d.drawLayer(l)
	}
	d.mu.Unlock()
	d.screen.Show()
}

func (d *Display) drawLayer(l *layer) {
	x0, y0 := d.absPos(l)
	r, g, b := l.color.RGB()
	dimmed := tcell.NewRGBColor(
		int32(float32(r)*l.alpha),
		int32(float32(g)*l.alpha),
		int32(float32(b)*l.alpha),
	)
	style := tcell.StyleDefault.Background(dimmed).Foreground(tcell.ColorWhite)
	for y := y0; y < y0+l.h; y++ {
		for x := x0; x < x0+l.w; x++ {
			d.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	title := runewidth.Truncate(fmt.Sprintf(" %s ", l.name), l.w, "…")
	col := x0
	for _, ch := range title {
		d.screen.SetContent(col, y0, ch, nil, style.Bold(true))
		col += runewidth.RuneWidth(ch)
	}
}

// LayerCount reports how many layers are tracked, for tests and stats.
func (d *Display) LayerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.layers)
}
