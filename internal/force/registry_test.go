package force

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigidsim/internal/diag"
)

func vecAlmostEqual(a, b mgl64.Vec3, tol float64) bool {
	return math.Abs(a.X()-b.X()) < tol &&
		math.Abs(a.Y()-b.Y()) < tol &&
		math.Abs(a.Z()-b.Z()) < tol
}

func TestAccumulateSumsAllEntries(t *testing.T) {
	r := NewRegistry("force", diag.Discard())
	r.Set("gravity", mgl64.Vec3{0, -0.9, 0})
	r.Set("wind", mgl64.Vec3{0.5, 0, 0.1})

	got := r.Accumulate()
	want := mgl64.Vec3{0.5, -0.9, 0.1}
	if !vecAlmostEqual(got, want, 1e-12) {
		t.Errorf("accumulate = %v, want %v", got, want)
	}
}

func TestSetOverwritesExistingName(t *testing.T) {
	r := NewRegistry("force", diag.Discard())
	r.Set("g", mgl64.Vec3{0, -1, 0})
	r.Set("g", mgl64.Vec3{0, -2, 0})

	got := r.Accumulate()
	want := mgl64.Vec3{0, -2, 0}
	if !vecAlmostEqual(got, want, 1e-12) {
		t.Errorf("re-adding under existing name must replace: got %v, want %v", got, want)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", r.Len())
	}
}

func TestAddRemoveLeavesNetUnchanged(t *testing.T) {
	r := NewRegistry("force", diag.Discard())
	r.Set("gravity", mgl64.Vec3{0, -0.9, 0})
	before := r.Accumulate()

	r.Set("x", mgl64.Vec3{3, 1, -2})
	r.Remove("x")

	after := r.Accumulate()
	if !vecAlmostEqual(before, after, 1e-12) {
		t.Errorf("add+remove must be idempotent: before %v, after %v", before, after)
	}
}

func TestRemoveMissingIsReportedNotFatal(t *testing.T) {
	var sb strings.Builder
	r := NewRegistry("torque", diag.NewWriter(&sb))

	r.Remove("spin")

	if !strings.Contains(sb.String(), "no torque named spin") {
		t.Errorf("expected diagnostic about missing name, got %q", sb.String())
	}
	if r.Len() != 0 {
		t.Errorf("registry must be unchanged, got %d entries", r.Len())
	}
}

func TestAccumulateEmpty(t *testing.T) {
	r := NewRegistry("force", diag.Discard())
	got := r.Accumulate()
	if got != (mgl64.Vec3{}) {
		t.Errorf("empty registry must accumulate to zero, got %v", got)
	}
}
