package metrics

import (
	"github.com/san-kum/rigidsim/internal/sim"
)

// Convergence reports the fraction of frames in which the contact
// resolver reached a non-penetrating state before its iteration cap.
type Convergence struct {
	name    string
	capped  int
	samples int
}

func NewConvergence() *Convergence {
	return &Convergence{name: "convergence"}
}

func (c *Convergence) Name() string { return c.name }

func (c *Convergence) Observe(w *sim.World, fs sim.FrameStats) {
	c.samples++
	if !fs.Converged {
		c.capped++
	}
}

func (c *Convergence) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.capped)/float64(c.samples)
}

func (c *Convergence) Reset() {
	c.capped = 0
	c.samples = 0
}
