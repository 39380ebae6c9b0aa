package sim

import "time"

// FrameStats summarizes one call to World.Step.
type FrameStats struct {
	Frame            int
	StepSize         float64
	ParticleContacts int
	BoxContacts      int
	Iterations       int
	Converged        bool
	MaxPenetration   float64
	Elapsed          time.Duration
}

// Metric accumulates a scalar over the run, sampled once per frame.
type Metric interface {
	Name() string
	Observe(w *World, fs FrameStats)
	Value() float64
	Reset()
}

// Observer receives a callback after every completed frame.
type Observer interface {
	OnStep(w *World, fs FrameStats)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(w *World, fs FrameStats)

func (f ObserverFunc) OnStep(w *World, fs FrameStats) { f(w, fs) }
