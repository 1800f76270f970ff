package wm

import (
	"testing"
	"time"

	"github.com/slatewm/slate/internal/anim"
	"github.com/slatewm/slate/surface"
)

func TestResizeEmitsOnlyOnChange(t *testing.T) {
	svc, comp, _ := newTestWM(t, nil)
	c := mustContainer(t, svc, "win", nil, 100, 100)

	svc.Lock()
	defer svc.Unlock()
	tx := c.PendingTransaction()

	c.Resize(tx, 100, 100) // unchanged since creation
	if !tx.Empty() {
		t.Fatal("Resize with the current size emitted an op")
	}

	c.Resize(tx, 200, 150)
	c.Resize(tx, 200, 150) // repeat within the same pass
	c.CommitPendingTransaction()
	if got := comp.Ops(surface.OpSetSize); got != 1 {
		t.Errorf("SetSize ops = %d, want 1 for one actual change", got)
	}

	c.Resize(c.PendingTransaction(), 100, 100)
	c.CommitPendingTransaction()
	if got := comp.Ops(surface.OpSetSize); got != 2 {
		t.Errorf("SetSize ops = %d, want 2 after reverting to the old size", got)
	}
	if c.SurfaceWidth() != 100 || c.SurfaceHeight() != 100 {
		t.Errorf("tracked size = %dx%d, want 100x100", c.SurfaceWidth(), c.SurfaceHeight())
	}
}

func TestRemoveImmediatelyTearsDownSubtree(t *testing.T) {
	svc, comp, _ := newTestWM(t, nil)
	root := mustContainer(t, svc, "root", nil, 100, 100)
	child := mustContainer(t, svc, "child", root, 50, 50)
	grand := mustContainer(t, svc, "grand", child, 25, 25)

	hookFired := 0
	svc.Lock()
	child.addDetachHook(func() { hookFired++ })
	root.RemoveImmediately()
	svc.Unlock()

	for _, c := range []*WindowContainer{root, child, grand} {
		if !c.Removed() {
			t.Errorf("%s not marked removed", c.Name())
		}
		if !comp.State(c.Surface()).Released {
			t.Errorf("%s surface not released", c.Name())
		}
	}
	if hookFired != 1 {
		t.Errorf("detach hook fired %d times, want 1", hookFired)
	}

	// Teardown is idempotent.
	svc.Lock()
	root.RemoveImmediately()
	svc.Unlock()
	if hookFired != 1 {
		t.Errorf("detach hook re-fired on repeated removal, count=%d", hookFired)
	}
}

func TestRemoveImmediatelyCancelsAnimation(t *testing.T) {
	svc, comp, clock := newTestWM(t, nil)
	root := mustContainer(t, svc, "root", nil, 100, 100)
	c := mustContainer(t, svc, "win", root, 50, 50)

	finished := 0
	svc.Lock()
	c.StartAnimation(c.PendingTransaction(), anim.Move{ToX: 40, Dur: 300 * time.Millisecond}, func() { finished++ })
	c.CommitPendingTransaction()
	leash := c.Animator().Leash()
	svc.Unlock()

	runTicks(clock, 3)

	svc.Lock()
	c.RemoveImmediately()
	svc.Unlock()

	if c.IsAnimating() {
		t.Error("removed container still animating")
	}
	if !comp.State(leash).Released {
		t.Error("leash surface not released on removal")
	}
	runTicks(clock, 30)
	if finished != 0 {
		t.Errorf("finish fired %d times for a removed container", finished)
	}
}

func TestAnimationDurationHintTracksActiveAnimation(t *testing.T) {
	svc, _, clock := newTestWM(t, nil)
	root := mustContainer(t, svc, "root", nil, 100, 100)
	c := mustContainer(t, svc, "win", root, 50, 50)

	if got := c.AnimationDurationHint(); got != 0 {
		t.Fatalf("idle hint = %v, want 0", got)
	}

	svc.Lock()
	c.StartAnimation(c.PendingTransaction(), anim.Move{ToX: 10, Dur: 160 * time.Millisecond}, nil)
	c.CommitPendingTransaction()
	if got := c.AnimationDurationHint(); got != 160*time.Millisecond {
		t.Errorf("active hint = %v, want 160ms", got)
	}
	svc.Unlock()

	runTicks(clock, 15)
	if got := c.AnimationDurationHint(); got != 0 {
		t.Errorf("hint after completion = %v, want 0", got)
	}
}
