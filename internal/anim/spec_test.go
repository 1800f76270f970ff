package anim

import (
	"testing"
	"time"

	"github.com/slatewm/slate/surface"
)

func applyAt(t *testing.T, spec Spec, elapsed time.Duration) surface.State {
	t.Helper()
	comp := surface.NewMemCompositor()
	s, err := comp.CreateSurface("target", 10, 10)
	if err != nil {
		t.Fatalf("CreateSurface: %v", err)
	}
	txn := surface.NewTransaction()
	spec.Apply(txn, s, elapsed)
	txn.Apply(comp)
	return comp.State(s)
}

func TestFadeEndpoints(t *testing.T) {
	spec := Fade{From: 0, To: 1, Dur: 200 * time.Millisecond}

	if got := applyAt(t, spec, 0).Alpha; got != 0 {
		t.Errorf("alpha at t=0 = %v, want 0", got)
	}
	if got := applyAt(t, spec, 200*time.Millisecond).Alpha; got != 1 {
		t.Errorf("alpha at t=duration = %v, want 1", got)
	}
	// Completion is idempotent past the duration.
	if got := applyAt(t, spec, time.Second).Alpha; got != 1 {
		t.Errorf("alpha past duration = %v, want 1", got)
	}
}

func TestFadeMidpointMonotonic(t *testing.T) {
	spec := Fade{From: 0, To: 1, Dur: 100 * time.Millisecond, Easing: EaseLinear}
	mid := applyAt(t, spec, 50*time.Millisecond).Alpha
	if mid <= 0 || mid >= 1 {
		t.Errorf("alpha at midpoint = %v, want strictly between endpoints", mid)
	}
}

func TestDimEndpoints(t *testing.T) {
	spec := Dim{From: 0.8, To: 0, Dur: 150 * time.Millisecond}
	if got := applyAt(t, spec, 0).Alpha; got != 0.8 {
		t.Errorf("alpha at t=0 = %v, want 0.8", got)
	}
	if got := applyAt(t, spec, 150*time.Millisecond).Alpha; got != 0 {
		t.Errorf("alpha at t=duration = %v, want 0", got)
	}
}

func TestZeroDurationCompletesImmediately(t *testing.T) {
	spec := Dim{From: 0, To: 0.5, Dur: 0}
	if got := applyAt(t, spec, 0).Alpha; got != 0.5 {
		t.Errorf("alpha for zero-duration spec = %v, want target 0.5", got)
	}
}

func TestMoveEndpoints(t *testing.T) {
	spec := Move{FromX: 0, FromY: 0, ToX: 100, ToY: 60, Dur: 200 * time.Millisecond}
	st := applyAt(t, spec, 0)
	if st.X != 0 || st.Y != 0 {
		t.Errorf("position at t=0 = (%d,%d), want (0,0)", st.X, st.Y)
	}
	st = applyAt(t, spec, 200*time.Millisecond)
	if st.X != 100 || st.Y != 60 {
		t.Errorf("position at t=duration = (%d,%d), want (100,60)", st.X, st.Y)
	}
}

func TestRotateEndpoints(t *testing.T) {
	spec := Rotate{FromDeg: 0, ToDeg: 90, Dur: 100 * time.Millisecond}
	st := applyAt(t, spec, 0)
	if st.Matrix.ScaleX < 0.999 {
		t.Errorf("matrix at t=0 = %+v, want identity", st.Matrix)
	}
	st = applyAt(t, spec, 100*time.Millisecond)
	if st.Matrix.ScaleX > 0.001 || st.Matrix.SkewY < 0.999 {
		t.Errorf("matrix at t=duration = %+v, want 90 degree rotation", st.Matrix)
	}
}
