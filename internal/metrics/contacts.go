package metrics

import (
	"github.com/san-kum/rigidsim/internal/sim"
)

// Contacts tracks the mean number of contacts handled per frame,
// counting particle pairs and box manifolds together.
type Contacts struct {
	name    string
	total   int
	samples int
}

func NewContacts() *Contacts {
	return &Contacts{name: "contacts"}
}

func (c *Contacts) Name() string { return c.name }

func (c *Contacts) Observe(w *sim.World, fs sim.FrameStats) {
	c.total += fs.ParticleContacts + fs.BoxContacts
	c.samples++
}

func (c *Contacts) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.total) / float64(c.samples)
}

func (c *Contacts) Reset() {
	c.total = 0
	c.samples = 0
}
