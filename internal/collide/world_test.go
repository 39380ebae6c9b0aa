package collide

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func identityAt(pos mgl64.Vec3) Transform {
	return Transform{Position: pos, Orientation: mgl64.QuatIdent()}
}

func collectContacts(w *World) map[[2]Handle]Manifold {
	out := make(map[[2]Handle]Manifold)
	w.TestCollision(VisitorFunc(func(a, b Handle, m Manifold) {
		out[[2]Handle{a, b}] = m
	}))
	return out
}

func TestSeparatedBoxesNoContact(t *testing.T) {
	w := NewWorld()
	w.CreateBody(mgl64.Vec3{0.5, 0.5, 0.5}, identityAt(mgl64.Vec3{0, 0, 0}))
	w.CreateBody(mgl64.Vec3{0.5, 0.5, 0.5}, identityAt(mgl64.Vec3{3, 0, 0}))

	if got := collectContacts(w); len(got) != 0 {
		t.Errorf("separated boxes must not collide, got %v", got)
	}
}

func TestOverlappingBoxesReportManifold(t *testing.T) {
	w := NewWorld()
	a := w.CreateBody(mgl64.Vec3{0.5, 0.5, 0.5}, identityAt(mgl64.Vec3{0, 0, 0}))
	b := w.CreateBody(mgl64.Vec3{0.5, 0.5, 0.5}, identityAt(mgl64.Vec3{0.8, 0, 0}))

	got := collectContacts(w)
	m, ok := got[[2]Handle{a, b}]
	if !ok {
		t.Fatalf("expected contact between %d and %d, got %v", a, b, got)
	}

	if math.Abs(m.Penetration-0.2) > 1e-9 {
		t.Errorf("penetration = %v, want 0.2", m.Penetration)
	}
	// Normal points from a toward b: +x.
	if math.Abs(m.Normal.X()-1) > 1e-9 || math.Abs(m.Normal.Y()) > 1e-9 || math.Abs(m.Normal.Z()) > 1e-9 {
		t.Errorf("normal = %v, want +x", m.Normal)
	}
	if len(m.Points) == 0 {
		t.Error("manifold must carry at least one contact point")
	}
}

func TestRotatedBoxContact(t *testing.T) {
	w := NewWorld()
	// A unit box rotated 45° about z has a vertex reaching sqrt(2)/2
	// below its center; place it so that vertex dips into the floor.
	floor := w.CreateBody(mgl64.Vec3{5, 0.5, 5}, identityAt(mgl64.Vec3{0, -0.5, 0}))
	box := w.CreateBody(mgl64.Vec3{0.5, 0.5, 0.5}, Transform{
		Position:    mgl64.Vec3{0, 0.65, 0},
		Orientation: mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1}),
	})

	got := collectContacts(w)
	m, ok := got[[2]Handle{floor, box}]
	if !ok {
		t.Fatalf("rotated box must touch floor, got %v", got)
	}
	if m.Penetration <= 0 {
		t.Errorf("penetration = %v, want > 0", m.Penetration)
	}
	if m.Normal.Y() < 0.9 {
		t.Errorf("normal = %v, want ~+y (from floor toward box)", m.Normal)
	}
}

func TestTouchingFacesWithinEpsilon(t *testing.T) {
	w := NewWorld()
	w.CreateBody(mgl64.Vec3{0.5, 0.5, 0.5}, identityAt(mgl64.Vec3{0, 0, 0}))
	w.CreateBody(mgl64.Vec3{0.5, 0.5, 0.5}, identityAt(mgl64.Vec3{1.001, 0, 0}))

	if got := collectContacts(w); len(got) != 0 {
		t.Errorf("boxes separated by a gap must not collide, got %v", got)
	}
}

func TestDestroyBodyRemovesFromQueries(t *testing.T) {
	w := NewWorld()
	a := w.CreateBody(mgl64.Vec3{0.5, 0.5, 0.5}, identityAt(mgl64.Vec3{0, 0, 0}))
	b := w.CreateBody(mgl64.Vec3{0.5, 0.5, 0.5}, identityAt(mgl64.Vec3{0.5, 0, 0}))

	if err := w.DestroyBody(b); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if got := collectContacts(w); len(got) != 0 {
		t.Errorf("destroyed body must not collide, got %v", got)
	}
	if w.Len() != 1 {
		t.Errorf("len = %d, want 1", w.Len())
	}

	if err := w.SetTransform(b, identityAt(mgl64.Vec3{})); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("set transform on destroyed handle: got %v, want ErrUnknownHandle", err)
	}
	if err := w.DestroyBody(b); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("double destroy: got %v, want ErrUnknownHandle", err)
	}

	// Surviving handle stays valid.
	if err := w.SetTransform(a, identityAt(mgl64.Vec3{1, 1, 1})); err != nil {
		t.Errorf("surviving handle must stay usable: %v", err)
	}
	tr, err := w.Transform(a)
	if err != nil || tr.Position != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("transform readback = %v, %v", tr, err)
	}
}

func TestSetTransformMovesBodyIntoContact(t *testing.T) {
	w := NewWorld()
	a := w.CreateBody(mgl64.Vec3{0.5, 0.5, 0.5}, identityAt(mgl64.Vec3{0, 0, 0}))
	b := w.CreateBody(mgl64.Vec3{0.5, 0.5, 0.5}, identityAt(mgl64.Vec3{5, 0, 0}))

	if got := collectContacts(w); len(got) != 0 {
		t.Fatalf("precondition: no contact expected, got %v", got)
	}

	if err := w.SetTransform(b, identityAt(mgl64.Vec3{0.9, 0, 0})); err != nil {
		t.Fatalf("set transform: %v", err)
	}
	got := collectContacts(w)
	if _, ok := got[[2]Handle{a, b}]; !ok {
		t.Errorf("moved body must now collide, got %v", got)
	}
}
