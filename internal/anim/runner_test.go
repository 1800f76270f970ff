// Copyright 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package anim

import (
	"testing"
	"time"

	"github.com/slatewm/slate/surface"
)

const frame = 16 * time.Millisecond

func newTestRunner() (*Runner, *surface.ManualClock, *surface.MemCompositor) {
	clock := surface.NewManualClock(frame)
	comp := surface.NewMemCompositor()
	r := NewRunner(clock, comp)
	r.SetCallbackExecutor(func(fn func()) { fn() })
	return r, clock, comp
}

func runTicks(clock *surface.ManualClock, n int) {
	for i := 0; i < n; i++ {
		clock.Advance()
	}
}

func TestStartAppliesInitialFrame(t *testing.T) {
	r, _, comp := newTestRunner()
	defer r.Close()
	s, _ := comp.CreateSurface("win", 10, 10)

	initial := surface.NewTransaction()
	r.Start(Fade{From: 0, To: 1, Dur: 200 * time.Millisecond}, s, initial, nil)

	if initial.Empty() {
		t.Fatal("initial transaction untouched; starting state would miss the next frame")
	}
	initial.Apply(comp)
	if got := comp.State(s).Alpha; got != 0 {
		t.Errorf("initial alpha = %v, want 0", got)
	}
}

func TestRunnerCompletesAndFiresFinishOnce(t *testing.T) {
	r, clock, comp := newTestRunner()
	defer r.Close()
	s, _ := comp.CreateSurface("win", 10, 10)

	finished := 0
	r.Start(Fade{From: 0, To: 1, Dur: 200 * time.Millisecond, Easing: EaseLinear}, s, nil, func() { finished++ })

	runTicks(clock, 20)

	if finished != 1 {
		t.Fatalf("finish callback fired %d times, want 1", finished)
	}
	if got := comp.State(s).Alpha; got != 1 {
		t.Errorf("final alpha = %v, want 1", got)
	}
	if r.IsAnimating(s) {
		t.Error("animation still registered after completion")
	}
}

func TestCancelPendingNeverFiresCallback(t *testing.T) {
	r, clock, comp := newTestRunner()
	defer r.Close()
	s, _ := comp.CreateSurface("win", 10, 10)

	finished := 0
	r.Start(Fade{From: 1, To: 0, Dur: 100 * time.Millisecond}, s, nil, func() { finished++ })
	r.Cancel(s)

	runTicks(clock, 10)
	if finished != 0 {
		t.Errorf("finish fired %d times for a cancelled pending animation", finished)
	}
	if r.IsAnimating(s) {
		t.Error("cancelled animation still registered")
	}
}

func TestCancelRunningSkipsFinish(t *testing.T) {
	r, clock, comp := newTestRunner()
	defer r.Close()
	s, _ := comp.CreateSurface("win", 10, 10)

	finished := 0
	r.Start(Fade{From: 1, To: 0, Dur: 100 * time.Millisecond}, s, nil, func() { finished++ })
	runTicks(clock, 2) // promoted and stepping
	if !r.IsAnimating(s) {
		t.Fatal("animation should be running")
	}
	r.Cancel(s)
	if r.IsAnimating(s) {
		t.Error("cancelled animation still visible in the registry")
	}
	runTicks(clock, 10)
	if finished != 0 {
		t.Errorf("finish fired %d times after cancellation", finished)
	}
}

func TestStartReplacesRunningAnimation(t *testing.T) {
	r, clock, comp := newTestRunner()
	defer r.Close()
	s, _ := comp.CreateSurface("win", 10, 10)

	finishedA, finishedB := 0, 0
	r.Start(Fade{From: 0, To: 1, Dur: 500 * time.Millisecond}, s, nil, func() { finishedA++ })
	runTicks(clock, 3)

	r.Start(Move{FromX: 0, FromY: 0, ToX: 50, ToY: 0, Dur: 64 * time.Millisecond, Easing: EaseLinear}, s, nil, func() { finishedB++ })

	stats := r.Stats()
	if stats.Pending+stats.Running > 1 {
		t.Fatalf("more than one animation registered for the surface: %+v", stats)
	}

	runTicks(clock, 10)
	if finishedA != 0 {
		t.Errorf("replaced animation's finish fired %d times", finishedA)
	}
	if finishedB != 1 {
		t.Errorf("replacement's finish fired %d times, want 1", finishedB)
	}
	if got := comp.State(s).X; got != 50 {
		t.Errorf("final position x = %d, want 50", got)
	}
}

func TestFrameCoalescesAllSurfaces(t *testing.T) {
	r, clock, comp := newTestRunner()
	defer r.Close()
	a, _ := comp.CreateSurface("a", 10, 10)
	b, _ := comp.CreateSurface("b", 10, 10)

	r.Start(Fade{From: 0, To: 1, Dur: 200 * time.Millisecond}, a, nil, nil)
	r.Start(Fade{From: 1, To: 0, Dur: 200 * time.Millisecond}, b, nil, nil)

	runTicks(clock, 1) // promotion tick, first frame skipped
	before := comp.Frames()
	runTicks(clock, 1)
	if got := comp.Frames() - before; got != 1 {
		t.Errorf("one tick with two animating surfaces produced %d commits, want 1", got)
	}
}

func TestZeroDurationCompletesOnFirstTick(t *testing.T) {
	r, clock, comp := newTestRunner()
	defer r.Close()
	s, _ := comp.CreateSurface("win", 10, 10)

	finished := 0
	r.Start(Dim{From: 0, To: 0.5, Dur: 0}, s, nil, func() { finished++ })
	runTicks(clock, 1)
	if finished != 1 {
		t.Fatalf("zero-duration finish fired %d times, want 1", finished)
	}
	if got := comp.State(s).Alpha; got != 0.5 {
		t.Errorf("alpha = %v, want 0.5", got)
	}
}

func TestTornDownSurfaceIsSkipped(t *testing.T) {
	r, clock, comp := newTestRunner()
	defer r.Close()
	s, _ := comp.CreateSurface("win", 10, 10)

	finished := 0
	r.Start(Fade{From: 0, To: 1, Dur: 200 * time.Millisecond}, s, nil, func() { finished++ })
	runTicks(clock, 2)
	s.Release()
	runTicks(clock, 20) // must not panic or fire the callback

	if finished != 0 {
		t.Errorf("finish fired %d times for a torn-down surface", finished)
	}
	if r.IsAnimating(s) {
		t.Error("torn-down surface still registered")
	}
}

func TestStartOnReleasedSurfaceIsNoOp(t *testing.T) {
	r, clock, comp := newTestRunner()
	defer r.Close()
	s, _ := comp.CreateSurface("win", 10, 10)
	s.Release()

	r.Start(Fade{From: 0, To: 1, Dur: 100 * time.Millisecond}, s, nil, func() {
		t.Error("finish fired for an animation that never started")
	})
	runTicks(clock, 10)
	if got := r.Stats().Started; got != 0 {
		t.Errorf("started count = %d, want 0", got)
	}
}