package wm

import (
	"testing"
	"time"

	"github.com/slatewm/slate/config"
	"github.com/slatewm/slate/surface"
)

const testFrame = 16 * time.Millisecond

// newTestWM builds a service over the in-memory compositor with a manually
// stepped clock. Finish callbacks run inline on the ticking goroutine, so
// tests must never hold the service lock while advancing the clock.
func newTestWM(t *testing.T, cfg *config.Config) (*Service, *surface.MemCompositor, *surface.ManualClock) {
	t.Helper()
	comp := surface.NewMemCompositor()
	clock := surface.NewManualClock(testFrame)
	svc := NewService(comp, clock, cfg)
	svc.Runner().SetCallbackExecutor(func(fn func()) { fn() })
	t.Cleanup(svc.Close)
	return svc, comp, clock
}

func mustContainer(t *testing.T, svc *Service, name string, parent *WindowContainer, w, h int) *WindowContainer {
	t.Helper()
	svc.Lock()
	defer svc.Unlock()
	c, err := svc.CreateContainer(name, parent, w, h)
	if err != nil {
		t.Fatalf("CreateContainer(%s): %v", name, err)
	}
	c.CommitPendingTransaction()
	return c
}

func mustToken(t *testing.T, svc *Service, name string, parent *WindowContainer, w, h int) *WindowToken {
	t.Helper()
	svc.Lock()
	defer svc.Unlock()
	tok, err := svc.CreateToken(name, parent, w, h)
	if err != nil {
		t.Fatalf("CreateToken(%s): %v", name, err)
	}
	tok.CommitPendingTransaction()
	return tok
}

func runTicks(clock *surface.ManualClock, n int) {
	for i := 0; i < n; i++ {
		clock.Advance()
	}
}

// waitFor polls cond under the service lock until it holds or the deadline
// passes. Used where real timers (not the manual clock) drive progress.
func waitFor(t *testing.T, svc *Service, timeout time.Duration, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		svc.Lock()
		ok := cond()
		svc.Unlock()
		if ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
