package body

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewParticleRejectsBadMass(t *testing.T) {
	tests := []struct {
		name    string
		mass    float64
		radius  float64
		wantErr error
	}{
		{"zero mass", 0, 0.1, ErrNonPositiveMass},
		{"negative mass", -1, 0.1, ErrNonPositiveMass},
		{"zero radius", 1, 0, ErrNonPositiveRadius},
		{"negative radius", 1, -0.1, ErrNonPositiveRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParticle(mgl64.Vec3{}, mgl64.Vec3{}, tt.mass, tt.radius)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewBoxInertia(t *testing.T) {
	b, err := NewBox(mgl64.Vec3{}, mgl64.Vec3{1, 2, 1}, 3.0)
	if err != nil {
		t.Fatalf("new box: %v", err)
	}

	// I_x = m/12*(h²+d²) = 3/12*(4+1) = 1.25
	wantIx := 1.25
	gotInvIx := b.InvInertiaBody.At(0, 0)
	if math.Abs(gotInvIx-1.0/wantIx) > 1e-12 {
		t.Errorf("inverse inertia xx = %v, want %v", gotInvIx, 1.0/wantIx)
	}

	if b.Orientation.Len() != 1 {
		t.Errorf("new box orientation must be unit, got |q| = %v", b.Orientation.Len())
	}
	if b.Static() {
		t.Error("mobile box reported static")
	}
}

func TestNewBoxRejectsDegenerate(t *testing.T) {
	if _, err := NewBox(mgl64.Vec3{}, mgl64.Vec3{1, 0, 1}, 1.0); !errors.Is(err, ErrDegenerateExtents) {
		t.Errorf("got %v, want ErrDegenerateExtents", err)
	}
	if _, err := NewBox(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, 0); !errors.Is(err, ErrNonPositiveMass) {
		t.Errorf("got %v, want ErrNonPositiveMass", err)
	}
}

func TestStaticBoxHasZeroInverseMass(t *testing.T) {
	b, err := NewStaticBox(mgl64.Vec3{0, -2, 0}, mgl64.Vec3{10, 1, 10})
	if err != nil {
		t.Fatalf("new static box: %v", err)
	}
	if !b.Static() {
		t.Error("boundary box must report static")
	}
	if b.InvInertiaWorld != (mgl64.Mat3{}) {
		t.Error("static box must have zero inverse inertia")
	}
}

func TestInertiaWorldTransport(t *testing.T) {
	b, err := NewBox(mgl64.Vec3{}, mgl64.Vec3{1, 2, 1}, 1.0)
	if err != nil {
		t.Fatalf("new box: %v", err)
	}

	// Rotating 90° about Z swaps the x and y principal axes.
	b.Orientation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	b.UpdateInertiaWorld()

	gotXX := b.InvInertiaWorld.At(0, 0)
	wantXX := b.InvInertiaBody.At(1, 1)
	if math.Abs(gotXX-wantXX) > 1e-9 {
		t.Errorf("world inertia xx after 90° z-rotation = %v, want body yy = %v", gotXX, wantXX)
	}
}

func TestSpawnParticlesWithinBounds(t *testing.T) {
	bounds := mgl64.Vec3{4, 6, 4}
	for _, n := range []int{0, 1, 3000} {
		s := NewStore()
		rng := rand.New(rand.NewSource(42))

		ids, err := s.SpawnParticles(n, bounds, 0.2, 1.0, 0.1, rng)
		if err != nil {
			t.Fatalf("spawn %d: %v", n, err)
		}
		if len(ids) != n {
			t.Fatalf("spawn %d: got %d ids", n, len(ids))
		}

		half := bounds.Mul(0.5)
		for _, id := range ids {
			p, err := s.Particle(id)
			if err != nil {
				t.Fatalf("particle %d: %v", id, err)
			}
			if math.Abs(p.Position.X()) > half.X() ||
				math.Abs(p.Position.Y()) > half.Y() ||
				math.Abs(p.Position.Z()) > half.Z() {
				t.Errorf("particle %d spawned outside bounds: %v", id, p.Position)
			}
		}
	}
}

func TestAddBoundaryCreatesSixStaticWalls(t *testing.T) {
	s := NewStore()
	ids, err := s.AddBoundary(mgl64.Vec3{6, 6, 6}, 1.0)
	if err != nil {
		t.Fatalf("add boundary: %v", err)
	}
	if len(ids) != 6 {
		t.Fatalf("expected 6 walls, got %d", len(ids))
	}
	for _, id := range ids {
		b, err := s.Box(id)
		if err != nil {
			t.Fatalf("box %d: %v", id, err)
		}
		if !b.Static() {
			t.Errorf("wall %d must be static", id)
		}
	}
}

func TestStoreUnknownID(t *testing.T) {
	s := NewStore()
	if _, err := s.Particle(0); !errors.Is(err, ErrUnknownID) {
		t.Errorf("got %v, want ErrUnknownID", err)
	}
	if _, err := s.Box(-1); !errors.Is(err, ErrUnknownID) {
		t.Errorf("got %v, want ErrUnknownID", err)
	}
}
