package sim

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/collide"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/diag"
	"github.com/san-kum/rigidsim/internal/force"
	"github.com/san-kum/rigidsim/internal/integrate"
	"github.com/san-kum/rigidsim/internal/resolve"
	"github.com/san-kum/rigidsim/internal/spatial"
)

// World owns the bodies and subsystems of one simulation and drives
// them through the fixed per-frame pipeline: contact detection, contact
// resolution, integration.
type World struct {
	cfg    *config.Config
	store  *body.Store
	forces *force.Registry
	torque *force.Registry

	grid     *spatial.Grid
	collider *collide.World
	handles  []collide.Handle
	resolver *resolve.Resolver
	integ    *integrate.Integrator

	sink diag.Sink
	rng  *rand.Rand

	metrics   []Metric
	observers []Observer

	frame      int
	simTime    float64
	frameAccum time.Duration
	frameN     int
	lastReport time.Time
	done       bool
	closed     bool
}

// New builds a world from cfg: spawned particles, the boundary walls,
// the configured boxes registered with the collision world, and gravity
// as a named global force.
func New(cfg *config.Config, sink diag.Sink) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = diag.Discard()
	}

	dims := config.Vec(cfg.WorldDims)
	w := &World{
		cfg:      cfg,
		store:    body.NewStore(),
		forces:   force.NewRegistry("force", sink),
		torque:   force.NewRegistry("torque", sink),
		grid:     spatial.NewGrid(dims, 2*cfg.Radius),
		collider: collide.NewWorld(),
		resolver: resolve.New(resolve.Config{
			MaxIterations: cfg.MaxIterations,
			Restitution:   cfg.Restitution,
		}, sink),
		integ: integrate.New(integrate.Config{
			BaseStep:       cfg.BaseStep,
			FrameScale:     cfg.FrameScale,
			Damping:        cfg.Damping,
			AngularDamping: cfg.AngularDamping,
		}),
		sink:       sink,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		lastReport: time.Now(),
	}

	if _, err := w.store.SpawnParticles(cfg.Particles, dims, cfg.VelRange, cfg.Mass, cfg.Radius, w.rng); err != nil {
		return nil, err
	}

	walls, err := w.store.AddBoundary(dims, cfg.WallThickness)
	if err != nil {
		return nil, err
	}
	for _, id := range walls {
		if err := w.registerBox(id); err != nil {
			return nil, err
		}
	}
	for _, bs := range cfg.Boxes {
		id, err := w.store.AddBox(config.Vec(bs.Center), config.Vec(bs.Dims), bs.Mass)
		if err != nil {
			return nil, err
		}
		if err := w.registerBox(id); err != nil {
			return nil, err
		}
	}

	w.forces.Set("gravity", config.Vec(cfg.Gravity))
	return w, nil
}

func (w *World) registerBox(id int) error {
	b, err := w.store.Box(id)
	if err != nil {
		return err
	}
	h := w.collider.CreateBody(b.HalfExtents, collide.Transform{
		Position:    b.Center,
		Orientation: b.Orientation,
	})
	w.handles = append(w.handles, h)
	return nil
}

// Step advances the world by one frame scaled from realElapsed seconds.
// Detection, resolution and integration run in that order. Anomalies
// inside the frame are reported to the sink and absorbed.
func (w *World) Step(realElapsed float64) FrameStats {
	start := time.Now()
	fs := FrameStats{Frame: w.frame}
	defer func() {
		if r := recover(); r != nil {
			w.sink.Logf("frame %d aborted: %v", fs.Frame, r)
		}
	}()

	particles := w.store.Particles()
	boxes := w.store.Boxes()

	w.grid.Detect(particles)
	fs.ParticleContacts = w.resolver.ResolveParticles(particles)

	rs := w.resolver.ResolveBoxes(boxes, w.collider, w.handles)
	fs.BoxContacts = rs.BoxContacts
	fs.Iterations = rs.Iterations
	fs.Converged = rs.Converged
	fs.MaxPenetration = rs.MaxPenetration

	h := w.integ.StepSize(realElapsed)
	fs.StepSize = h
	netForce := w.forces.Accumulate()
	netTorque := w.torque.Accumulate()
	w.integ.Particles(h, particles, netForce)
	w.integ.Boxes(h, boxes, netForce, netTorque)

	w.frame++
	w.simTime += h
	fs.Elapsed = time.Since(start)
	w.report(fs)

	for _, m := range w.metrics {
		m.Observe(w, fs)
	}
	for _, o := range w.observers {
		o.OnStep(w, fs)
	}
	return fs
}

// report prints frame timing at most once per wall-clock second.
func (w *World) report(fs FrameStats) {
	w.frameAccum += fs.Elapsed
	w.frameN++
	if time.Since(w.lastReport) < time.Second {
		return
	}
	avg := w.frameAccum / time.Duration(w.frameN)
	fps := 0.0
	if avg > 0 {
		fps = float64(time.Second) / float64(avg)
	}
	w.sink.Logf("frame %d: %.2f ms avg, %.1f fps", fs.Frame, float64(avg)/float64(time.Millisecond), fps)
	w.frameAccum = 0
	w.frameN = 0
	w.lastReport = time.Now()
}

// AddParticle inserts a particle at rest with the configured mass and
// radius and returns its id.
func (w *World) AddParticle(position mgl64.Vec3) (int, error) {
	return w.store.AddParticle(position, mgl64.Vec3{}, w.cfg.Mass, w.cfg.Radius)
}

// AddBox inserts a dynamic box with the configured default mass and
// registers it with the collision world.
func (w *World) AddBox(center, dims mgl64.Vec3) (int, error) {
	id, err := w.store.AddBox(center, dims, w.cfg.Mass)
	if err != nil {
		return 0, err
	}
	if err := w.registerBox(id); err != nil {
		return 0, err
	}
	return id, nil
}

func (w *World) AddGlobalForce(name string, v mgl64.Vec3)  { w.forces.Set(name, v) }
func (w *World) RemoveGlobalForce(name string)             { w.forces.Remove(name) }
func (w *World) AddGlobalTorque(name string, v mgl64.Vec3) { w.torque.Set(name, v) }
func (w *World) RemoveGlobalTorque(name string)            { w.torque.Remove(name) }

func (w *World) AddMetric(m Metric)     { w.metrics = append(w.metrics, m) }
func (w *World) AddObserver(o Observer) { w.observers = append(w.observers, o) }

func (w *World) Particles() []*body.Particle { return w.store.Particles() }
func (w *World) Boxes() []*body.Box          { return w.store.Boxes() }

func (w *World) Particle(id int) (*body.Particle, error) { return w.store.Particle(id) }
func (w *World) Box(id int) (*body.Box, error)           { return w.store.Box(id) }

func (w *World) Forces() *force.Registry  { return w.forces }
func (w *World) Torques() *force.Registry { return w.torque }

func (w *World) Config() *config.Config { return w.cfg }
func (w *World) Frame() int             { return w.frame }
func (w *World) Time() float64          { return w.simTime }

func (w *World) Done() bool { return w.done }
func (w *World) Stop()      { w.done = true }

// Close releases every collision-world handle before dropping the
// world. Safe to call more than once.
func (w *World) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	var first error
	for _, h := range w.handles {
		if err := w.collider.DestroyBody(h); err != nil && first == nil {
			first = err
		}
	}
	w.handles = nil
	w.collider = nil
	return first
}
