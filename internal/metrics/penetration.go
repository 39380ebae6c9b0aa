package metrics

import (
	"github.com/san-kum/rigidsim/internal/sim"
)

// MaxPenetration tracks the deepest box overlap seen across the run,
// sampled before the resolver corrects each frame.
type MaxPenetration struct {
	name string
	max  float64
}

func NewMaxPenetration() *MaxPenetration {
	return &MaxPenetration{name: "max_penetration"}
}

func (p *MaxPenetration) Name() string { return p.name }

func (p *MaxPenetration) Observe(w *sim.World, fs sim.FrameStats) {
	if fs.MaxPenetration > p.max {
		p.max = fs.MaxPenetration
	}
}

func (p *MaxPenetration) Value() float64 {
	return p.max
}

func (p *MaxPenetration) Reset() {
	p.max = 0
}
