// Package integrate advances particle and rigid-box state with
// semi-implicit Euler: velocity from acceleration first, then position
// from the new velocity, within the same step.
package integrate

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigidsim/internal/body"
)

// Constants matching the reference tuning: the step scale decouples
// simulation rate from frame rate, damping bleeds energy out of both
// linear and angular motion.
const (
	DefaultBaseStep   = 0.03
	DefaultFrameScale = 133.33
	DefaultDamping    = 0.09
)

type Config struct {
	BaseStep       float64
	FrameScale     float64
	Damping        float64
	AngularDamping float64
}

func DefaultConfig() Config {
	return Config{
		BaseStep:       DefaultBaseStep,
		FrameScale:     DefaultFrameScale,
		Damping:        DefaultDamping,
		AngularDamping: DefaultDamping,
	}
}

type Integrator struct {
	cfg Config
}

func New(cfg Config) *Integrator {
	return &Integrator{cfg: cfg}
}

// StepSize converts real elapsed seconds into the simulation step h.
func (it *Integrator) StepSize(realElapsed float64) float64 {
	return it.cfg.BaseStep * it.cfg.FrameScale * realElapsed
}

// Particles advances every particle by h under the accumulated global
// force. Contact-partner lists are cleared for the next detection
// step. Never fails: zero-mass particles cannot exist past
// construction.
func (it *Integrator) Particles(h float64, particles []*body.Particle, netForce mgl64.Vec3) {
	for _, p := range particles {
		damping := p.Velocity.Mul(-it.cfg.Damping)
		acc := netForce.Add(damping).Mul(1 / p.Mass)

		p.Velocity = p.Velocity.Add(acc.Mul(h))
		p.Position = p.Position.Add(p.Velocity.Mul(h))

		p.ClearContacts()
	}
}

// Boxes advances every mobile box by h. The formulation is
// momentum-primary: force integrates linear momentum and velocity is
// derived through the inverse mass; torque integrates angular momentum
// and angular velocity is derived through the world-space inverse
// inertia tensor, which is transported from body space each step.
// Static boxes are skipped entirely.
func (it *Integrator) Boxes(h float64, boxes []*body.Box, netForce, netTorque mgl64.Vec3) {
	for _, b := range boxes {
		if b.Static() {
			continue
		}

		// Linear: dP = F - c·v.
		dp := netForce.Sub(b.Velocity.Mul(it.cfg.Damping))
		b.Momentum = b.Momentum.Add(dp.Mul(h))
		b.Velocity = b.Momentum.Mul(b.InvMass)
		b.Center = b.Center.Add(b.Velocity.Mul(h))

		// Angular: transport inertia, then dL = τ - c·ω.
		b.UpdateInertiaWorld()
		dl := netTorque.Sub(b.AngularVelocity.Mul(it.cfg.AngularDamping))
		b.AngularMomentum = b.AngularMomentum.Add(dl.Mul(h))
		b.AngularVelocity = b.InvInertiaWorld.Mul3x1(b.AngularMomentum)

		// Orientation: q += 0.5·h·(0, ω)·q, then renormalize. The
		// renormalization is mandatory; drift across steps is not
		// tolerated.
		spin := mgl64.Quat{W: 0, V: b.AngularVelocity}
		b.Orientation = b.Orientation.Add(spin.Mul(b.Orientation).Scale(0.5 * h)).Normalize()
	}
}
