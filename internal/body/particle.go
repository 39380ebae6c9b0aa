package body

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Particle is a point mass with a radius and no orientation.
type Particle struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Mass     float64
	Radius   float64

	// Contacts holds the IDs of particles touching this one during the
	// current step. The integrator clears it at the end of every step.
	Contacts []int
}

// NewParticle validates and constructs a particle. Zero or negative
// mass and radius are construction-time failures; they never surface
// mid-simulation.
func NewParticle(pos, vel mgl64.Vec3, mass, radius float64) (*Particle, error) {
	if mass <= 0 {
		return nil, ErrNonPositiveMass
	}
	if radius <= 0 {
		return nil, ErrNonPositiveRadius
	}
	return &Particle{
		Position: pos,
		Velocity: vel,
		Mass:     mass,
		Radius:   radius,
	}, nil
}

// ClearContacts resets the current-step contact partner list while
// keeping the backing array.
func (p *Particle) ClearContacts() {
	p.Contacts = p.Contacts[:0]
}
