package body

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Box is an oriented rigid body. Mobile boxes carry full linear and
// angular state; static boxes (InvMass == 0) never move but still
// participate in collision.
type Box struct {
	Center      mgl64.Vec3
	Orientation mgl64.Quat

	Velocity        mgl64.Vec3
	Momentum        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	AngularMomentum mgl64.Vec3

	InvMass float64

	// InvInertiaBody is the body-space inverse inertia tensor.
	// InvInertiaWorld is recomputed from the orientation every step as
	// R * InvInertiaBody * R^T.
	InvInertiaBody  mgl64.Mat3
	InvInertiaWorld mgl64.Mat3

	HalfExtents mgl64.Vec3
}

// NewBox constructs a mobile box of the given full extents. mass must
// be positive; degenerate extents are rejected.
func NewBox(center, dims mgl64.Vec3, mass float64) (*Box, error) {
	if mass <= 0 {
		return nil, ErrNonPositiveMass
	}
	if dims.X() <= 0 || dims.Y() <= 0 || dims.Z() <= 0 {
		return nil, ErrDegenerateExtents
	}

	// Solid cuboid inertia: I = m/12 * diag(h²+d², w²+d², w²+h²).
	w, h, d := dims.X(), dims.Y(), dims.Z()
	ix := mass / 12.0 * (h*h + d*d)
	iy := mass / 12.0 * (w*w + d*d)
	iz := mass / 12.0 * (w*w + h*h)

	b := &Box{
		Center:         center,
		Orientation:    mgl64.QuatIdent(),
		InvMass:        1.0 / mass,
		InvInertiaBody: mgl64.Diag3(mgl64.Vec3{1.0 / ix, 1.0 / iy, 1.0 / iz}),
		HalfExtents:    dims.Mul(0.5),
	}
	b.UpdateInertiaWorld()
	return b, nil
}

// NewStaticBox constructs an immovable boundary box (inverse mass 0,
// zero inverse inertia).
func NewStaticBox(center, dims mgl64.Vec3) (*Box, error) {
	if dims.X() <= 0 || dims.Y() <= 0 || dims.Z() <= 0 {
		return nil, ErrDegenerateExtents
	}
	return &Box{
		Center:      center,
		Orientation: mgl64.QuatIdent(),
		HalfExtents: dims.Mul(0.5),
	}, nil
}

// SetVelocity sets the linear velocity and keeps momentum consistent.
// No-op for static boxes.
func (b *Box) SetVelocity(v mgl64.Vec3) {
	if b.Static() {
		return
	}
	b.Velocity = v
	b.Momentum = v.Mul(1 / b.InvMass)
}

// Static reports whether the box is an immovable boundary body.
func (b *Box) Static() bool {
	return b.InvMass == 0
}

// UpdateInertiaWorld transports the body-space inverse inertia tensor
// into world space using the current orientation.
func (b *Box) UpdateInertiaWorld() {
	if b.Static() {
		return
	}
	r := b.Orientation.Mat4().Mat3()
	b.InvInertiaWorld = r.Mul3(b.InvInertiaBody).Mul3(r.Transpose())
}

// VelocityAt reports the world-space velocity of a point rigidly
// attached to the box.
func (b *Box) VelocityAt(worldPoint mgl64.Vec3) mgl64.Vec3 {
	r := worldPoint.Sub(b.Center)
	return b.Velocity.Add(b.AngularVelocity.Cross(r))
}
