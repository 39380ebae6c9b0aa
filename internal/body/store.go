package body

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Store exclusively owns every particle and box for the process
// lifetime. IDs are stable indices; bodies are never removed
// mid-simulation, only at world teardown.
type Store struct {
	particles []*Particle
	boxes     []*Box
}

func NewStore() *Store {
	return &Store{}
}

// AddParticle validates and stores a particle, returning its ID.
func (s *Store) AddParticle(pos, vel mgl64.Vec3, mass, radius float64) (int, error) {
	p, err := NewParticle(pos, vel, mass, radius)
	if err != nil {
		return 0, err
	}
	s.particles = append(s.particles, p)
	return len(s.particles) - 1, nil
}

// AddBox validates and stores a mobile box, returning its ID.
func (s *Store) AddBox(center, dims mgl64.Vec3, mass float64) (int, error) {
	b, err := NewBox(center, dims, mass)
	if err != nil {
		return 0, err
	}
	s.boxes = append(s.boxes, b)
	return len(s.boxes) - 1, nil
}

// AddStaticBox stores an immovable boundary box, returning its ID.
func (s *Store) AddStaticBox(center, dims mgl64.Vec3) (int, error) {
	b, err := NewStaticBox(center, dims)
	if err != nil {
		return 0, err
	}
	s.boxes = append(s.boxes, b)
	return len(s.boxes) - 1, nil
}

// Particle returns a mutable reference for the given ID.
func (s *Store) Particle(id int) (*Particle, error) {
	if id < 0 || id >= len(s.particles) {
		return nil, ErrUnknownID
	}
	return s.particles[id], nil
}

// Box returns a mutable reference for the given ID.
func (s *Store) Box(id int) (*Box, error) {
	if id < 0 || id >= len(s.boxes) {
		return nil, ErrUnknownID
	}
	return s.boxes[id], nil
}

// Particles exposes the live particle slice. Callers must not reorder
// or shrink it; IDs are positions in this slice.
func (s *Store) Particles() []*Particle { return s.particles }

// Boxes exposes the live box slice under the same contract.
func (s *Store) Boxes() []*Box { return s.boxes }

// SpawnParticles creates n particles with positions uniformly
// distributed inside the half-extents of bounds and velocities in
// ±velRange per axis, all sharing mass and radius.
func (s *Store) SpawnParticles(n int, bounds mgl64.Vec3, velRange, mass, radius float64, rng *rand.Rand) ([]int, error) {
	ids := make([]int, 0, n)
	half := bounds.Mul(0.5)
	for i := 0; i < n; i++ {
		pos := mgl64.Vec3{
			uniform(rng, -half.X(), half.X()),
			uniform(rng, -half.Y(), half.Y()),
			uniform(rng, -half.Z(), half.Z()),
		}
		vel := mgl64.Vec3{
			uniform(rng, -velRange, velRange),
			uniform(rng, -velRange, velRange),
			uniform(rng, -velRange, velRange),
		}
		id, err := s.AddParticle(pos, vel, mass, radius)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// AddBoundary creates the six static boundary boxes (floor, ceiling,
// four walls) enclosing a volume of the given dims, each of the given
// thickness, and returns their IDs.
func (s *Store) AddBoundary(dims mgl64.Vec3, thickness float64) ([]int, error) {
	half := dims.Mul(0.5)
	walls := []struct {
		center mgl64.Vec3
		size   mgl64.Vec3
	}{
		{mgl64.Vec3{0, -half.Y() - thickness/2, 0}, mgl64.Vec3{dims.X(), thickness, dims.Z()}}, // floor
		{mgl64.Vec3{0, half.Y() + thickness/2, 0}, mgl64.Vec3{dims.X(), thickness, dims.Z()}},  // ceiling
		{mgl64.Vec3{-half.X() - thickness/2, 0, 0}, mgl64.Vec3{thickness, dims.Y(), dims.Z()}},
		{mgl64.Vec3{half.X() + thickness/2, 0, 0}, mgl64.Vec3{thickness, dims.Y(), dims.Z()}},
		{mgl64.Vec3{0, 0, -half.Z() - thickness/2}, mgl64.Vec3{dims.X(), dims.Y(), thickness}},
		{mgl64.Vec3{0, 0, half.Z() + thickness/2}, mgl64.Vec3{dims.X(), dims.Y(), thickness}},
	}

	ids := make([]int, 0, len(walls))
	for _, w := range walls {
		id, err := s.AddStaticBox(w.center, w.size)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func uniform(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}
