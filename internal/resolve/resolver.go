// Package resolve implements the iterative impulse-based contact
// resolver. Rigid contacts can re-introduce new contacts as velocities
// change, so box resolution iterates to a quasi-fixed-point; the
// iteration cap bounds worst-case per-frame cost when stacked or
// degenerate configurations fail to converge.
package resolve

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/collide"
	"github.com/san-kum/rigidsim/internal/diag"
)

// DefaultMaxIterations is the default bound on box-resolution passes.
// It is policy, not a correctness constant; raise it for dense stacks.
const DefaultMaxIterations = 30

// penetrationSlop is the depth below which a reported contact counts
// as resting touch rather than penetration. Without it the loop would
// chase float residue from its own positional corrections and always
// run to the cap.
const penetrationSlop = 1e-7

type Config struct {
	// MaxIterations caps the box-resolution loop. Zero means
	// DefaultMaxIterations.
	MaxIterations int

	// Restitution in [0, 1] scales the reflected normal velocity.
	Restitution float64
}

// Stats summarizes one resolution pass over a frame.
type Stats struct {
	ParticleContacts int
	BoxContacts      int
	Iterations       int
	Converged        bool

	// MaxPenetration is the deepest overlap seen on the first query of
	// the pass, before any correction was applied.
	MaxPenetration float64
}

type Resolver struct {
	cfg  Config
	sink diag.Sink

	// scratch, reused across frames
	manifolds []pairContact
}

type pairContact struct {
	a, b collide.Handle
	m    collide.Manifold
}

func New(cfg Config, sink diag.Sink) *Resolver {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if sink == nil {
		sink = diag.Stderr()
	}
	return &Resolver{cfg: cfg, sink: sink}
}

// ResolveParticles applies positional separation and a velocity-level
// impulse to every touching particle pair found by the detector. It
// reports the number of pairs handled.
func (r *Resolver) ResolveParticles(particles []*body.Particle) int {
	pairs := 0
	for i, p := range particles {
		for _, j := range p.Contacts {
			if j <= i {
				continue // each pair handled once
			}
			r.resolveParticlePair(p, particles[j])
			pairs++
		}
	}
	return pairs
}

func (r *Resolver) resolveParticlePair(p, q *body.Particle) {
	d := q.Position.Sub(p.Position)
	dist := d.Len()

	var n mgl64.Vec3
	if dist < 1e-12 {
		// Coincident centers: any separation axis works.
		n = mgl64.Vec3{0, 1, 0}
	} else {
		n = d.Mul(1 / dist)
	}

	penetration := p.Radius + q.Radius - dist
	if penetration <= 0 {
		return
	}

	// Positional correction, split by inverse mass so the heavier
	// particle moves less. Never over-corrects, so total penetration
	// cannot increase.
	wp, wq := 1/p.Mass, 1/q.Mass
	total := wp + wq
	p.Position = p.Position.Sub(n.Mul(penetration * wp / total))
	q.Position = q.Position.Add(n.Mul(penetration * wq / total))

	// Velocity correction only when the pair is approaching.
	vn := q.Velocity.Sub(p.Velocity).Dot(n)
	if vn >= 0 {
		return
	}
	impulse := -(1 + r.cfg.Restitution) * vn / total
	p.Velocity = p.Velocity.Sub(n.Mul(impulse * wp))
	q.Velocity = q.Velocity.Add(n.Mul(impulse * wq))
}

// ResolveBoxes runs the bounded fixed-point loop: push current
// transforms, query the collision world, apply one impulse pass, and
// repeat until a pass reports no contacts or the cap is reached.
// handles[i] must be the collision-world handle of boxes[i].
func (r *Resolver) ResolveBoxes(boxes []*body.Box, world *collide.World, handles []collide.Handle) Stats {
	index := make(map[collide.Handle]int, len(handles))
	for i, h := range handles {
		index[h] = i
	}

	var stats Stats
	for {
		for i, b := range boxes {
			// Positional corrections move centers between passes, so
			// the world needs fresh transforms before every query.
			if err := world.SetTransform(handles[i], collide.Transform{
				Position:    b.Center,
				Orientation: b.Orientation,
			}); err != nil {
				r.sink.Logf("push transform for box %d: %v", i, err)
			}
		}

		r.manifolds = r.manifolds[:0]
		world.TestCollision(collide.VisitorFunc(func(a, b collide.Handle, m collide.Manifold) {
			if m.Penetration <= penetrationSlop {
				return
			}
			if stats.Iterations == 0 && m.Penetration > stats.MaxPenetration {
				stats.MaxPenetration = m.Penetration
			}
			r.manifolds = append(r.manifolds, pairContact{a: a, b: b, m: m})
		}))

		if len(r.manifolds) == 0 {
			stats.Converged = true
			break
		}

		stats.BoxContacts += len(r.manifolds)
		for _, pc := range r.manifolds {
			r.resolveBoxPair(boxes[index[pc.a]], boxes[index[pc.b]], pc.m)
		}

		stats.Iterations++
		if stats.Iterations >= r.cfg.MaxIterations {
			r.sink.Logf("contact resolution hit iteration cap (%d), continuing with partial state", r.cfg.MaxIterations)
			break
		}
	}

	if stats.Converged && stats.Iterations > 0 {
		r.sink.Logf("contacts converged after %d iterations", stats.Iterations)
	}
	return stats
}

// resolveBoxPair applies one velocity-level impulse per contact point
// plus a positional correction along the manifold normal. Impulses
// change momenta directly; velocities are re-derived through the
// inverse mass and inverse inertia, which leaves static bodies
// (both inverses zero) untouched.
func (r *Resolver) resolveBoxPair(a, b *body.Box, m collide.Manifold) {
	wa, wb := a.InvMass, b.InvMass
	total := wa + wb
	if total == 0 {
		return // two boundary boxes
	}
	n := m.Normal

	for _, pt := range m.Points {
		ra := pt.Sub(a.Center)
		rb := pt.Sub(b.Center)

		vrel := b.VelocityAt(pt).Sub(a.VelocityAt(pt))
		vn := vrel.Dot(n)
		if vn >= 0 {
			continue // separating at this point
		}

		raCrossN := ra.Cross(n)
		rbCrossN := rb.Cross(n)
		k := wa + wb +
			a.InvInertiaWorld.Mul3x1(raCrossN).Dot(raCrossN) +
			b.InvInertiaWorld.Mul3x1(rbCrossN).Dot(rbCrossN)
		if k < 1e-12 {
			continue
		}

		j := -(1 + r.cfg.Restitution) * vn / k
		impulse := n.Mul(j)

		a.Momentum = a.Momentum.Sub(impulse)
		b.Momentum = b.Momentum.Add(impulse)
		a.Velocity = a.Momentum.Mul(wa)
		b.Velocity = b.Momentum.Mul(wb)

		a.AngularMomentum = a.AngularMomentum.Sub(ra.Cross(impulse))
		b.AngularMomentum = b.AngularMomentum.Add(rb.Cross(impulse))
		a.AngularVelocity = a.InvInertiaWorld.Mul3x1(a.AngularMomentum)
		b.AngularVelocity = b.InvInertiaWorld.Mul3x1(b.AngularMomentum)
	}

	// Positional correction split by inverse mass. Correcting the full
	// penetration guarantees the pair's penetration never grows across
	// an iteration.
	a.Center = a.Center.Sub(n.Mul(m.Penetration * wa / total))
	b.Center = b.Center.Add(n.Mul(m.Penetration * wb / total))
}
