// Package collide implements the rigid-body collision world. Callers
// address bodies only through opaque handles; the world performs its
// own broad and narrow phase and reports contact manifolds through a
// visitor.
package collide

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// Handle identifies a body registered with the world. Handles stay
// valid until DestroyBody and are never reissued.
type Handle int

// Transform is the pose pushed into the world before each query.
type Transform struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Visitor receives one call per colliding pair during TestCollision.
type Visitor interface {
	Visit(a, b Handle, m Manifold)
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(a, b Handle, m Manifold)

func (f VisitorFunc) Visit(a, b Handle, m Manifold) { f(a, b, m) }

// ErrUnknownHandle indicates a handle the world never issued or one
// already destroyed.
var ErrUnknownHandle = errors.New("collide: unknown body handle")

type entry struct {
	halfExtents mgl64.Vec3
	transform   Transform
	rot         mgl64.Mat3
	alive       bool
}

// World holds the registered boxes. It is purely geometric; it has no
// notion of mass or velocity and never owns the simulation bodies.
type World struct {
	entries []entry
}

func NewWorld() *World {
	return &World{}
}

// CreateBody registers an oriented box and returns its handle.
func (w *World) CreateBody(halfExtents mgl64.Vec3, tr Transform) Handle {
	w.entries = append(w.entries, entry{
		halfExtents: halfExtents,
		transform:   tr,
		rot:         tr.Orientation.Mat4().Mat3(),
		alive:       true,
	})
	return Handle(len(w.entries) - 1)
}

// SetTransform updates the pose of a registered body.
func (w *World) SetTransform(h Handle, tr Transform) error {
	e, err := w.lookup(h)
	if err != nil {
		return err
	}
	e.transform = tr
	e.rot = tr.Orientation.Mat4().Mat3()
	return nil
}

// Transform reports the current pose of a registered body.
func (w *World) Transform(h Handle) (Transform, error) {
	e, err := w.lookup(h)
	if err != nil {
		return Transform{}, err
	}
	return e.transform, nil
}

// DestroyBody releases a handle. Further use of it fails with
// ErrUnknownHandle.
func (w *World) DestroyBody(h Handle) error {
	e, err := w.lookup(h)
	if err != nil {
		return err
	}
	e.alive = false
	return nil
}

// Len reports the number of live bodies.
func (w *World) Len() int {
	n := 0
	for i := range w.entries {
		if w.entries[i].alive {
			n++
		}
	}
	return n
}

// TestCollision runs broad phase (world AABB overlap) and narrow phase
// (separating-axis test) over all live pairs and reports each contact
// manifold to the visitor. Manifold normals point from a toward b.
func (w *World) TestCollision(v Visitor) {
	n := len(w.entries)
	for i := 0; i < n; i++ {
		ei := &w.entries[i]
		if !ei.alive {
			continue
		}
		minI, maxI := aabb(ei.transform.Position, ei.rot, ei.halfExtents)
		for j := i + 1; j < n; j++ {
			ej := &w.entries[j]
			if !ej.alive {
				continue
			}
			minJ, maxJ := aabb(ej.transform.Position, ej.rot, ej.halfExtents)
			if !aabbOverlap(minI, maxI, minJ, maxJ) {
				continue
			}
			m, hit := testOBB(
				ei.transform.Position, ei.rot, ei.halfExtents,
				ej.transform.Position, ej.rot, ej.halfExtents,
			)
			if hit {
				v.Visit(Handle(i), Handle(j), m)
			}
		}
	}
}

func (w *World) lookup(h Handle) (*entry, error) {
	if h < 0 || int(h) >= len(w.entries) || !w.entries[h].alive {
		return nil, ErrUnknownHandle
	}
	return &w.entries[h], nil
}
