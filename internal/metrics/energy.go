package metrics

import (
	"github.com/san-kum/rigidsim/internal/sim"
)

// KineticEnergy samples the total kinetic energy of the world each
// frame and reports the most recent sample.
type KineticEnergy struct {
	name    string
	current float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(w *sim.World, fs sim.FrameStats) {
	total := 0.0
	for _, p := range w.Particles() {
		total += 0.5 * p.Mass * p.Velocity.Dot(p.Velocity)
	}
	for _, b := range w.Boxes() {
		total += 0.5 * b.Velocity.Dot(b.Momentum)
		total += 0.5 * b.AngularVelocity.Dot(b.AngularMomentum)
	}
	k.current = total
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	return k.current
}

func (k *KineticEnergy) Reset() {
	k.current = 0
	k.samples = 0
}
