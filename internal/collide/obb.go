package collide

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Manifold describes one pairwise contact reported by the world.
// Normal is a unit vector pointing from body A toward body B;
// separating the pair means moving B along +Normal (or A along
// -Normal) by Penetration.
type Manifold struct {
	Normal      mgl64.Vec3
	Penetration float64
	Points      []mgl64.Vec3
}

const axisEpsilon = 1e-9

// testOBB runs the separating-axis test between two oriented boxes.
// aR and bR are rotation matrices whose columns are the box axes, aH
// and bH the half-extents. It returns the contact manifold and whether
// the boxes overlap.
func testOBB(aC mgl64.Vec3, aR mgl64.Mat3, aH mgl64.Vec3, bC mgl64.Vec3, bR mgl64.Mat3, bH mgl64.Vec3) (Manifold, bool) {
	var r, absR [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = aR.Col(i).Dot(bR.Col(j))
			// Epsilon guards near-parallel edge axes against
			// cancellation in the cross-product tests.
			absR[i][j] = math.Abs(r[i][j]) + axisEpsilon
		}
	}

	d := bC.Sub(aC)
	// d expressed in A's frame.
	t := [3]float64{d.Dot(aR.Col(0)), d.Dot(aR.Col(1)), d.Dot(aR.Col(2))}

	best := math.MaxFloat64
	var bestAxis mgl64.Vec3

	consider := func(axis mgl64.Vec3, overlap float64) bool {
		if overlap < 0 {
			return false
		}
		length := axis.Len()
		if length < axisEpsilon {
			return true // degenerate cross axis, skip
		}
		overlap /= length
		if overlap < best {
			best = overlap
			bestAxis = axis.Mul(1 / length)
		}
		return true
	}

	ah := [3]float64{aH.X(), aH.Y(), aH.Z()}
	bh := [3]float64{bH.X(), bH.Y(), bH.Z()}

	// A's face axes.
	for i := 0; i < 3; i++ {
		rb := bh[0]*absR[i][0] + bh[1]*absR[i][1] + bh[2]*absR[i][2]
		if !consider(aR.Col(i), ah[i]+rb-math.Abs(t[i])) {
			return Manifold{}, false
		}
	}

	// B's face axes.
	for j := 0; j < 3; j++ {
		ra := ah[0]*absR[0][j] + ah[1]*absR[1][j] + ah[2]*absR[2][j]
		proj := math.Abs(d.Dot(bR.Col(j)))
		if !consider(bR.Col(j), ra+bh[j]-proj) {
			return Manifold{}, false
		}
	}

	// Edge-edge cross axes Ai × Bj.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			i1, i2 := (i+1)%3, (i+2)%3
			j1, j2 := (j+1)%3, (j+2)%3
			ra := ah[i1]*absR[i2][j] + ah[i2]*absR[i1][j]
			rb := bh[j1]*absR[i][j2] + bh[j2]*absR[i][j1]
			proj := math.Abs(t[i2]*r[i1][j] - t[i1]*r[i2][j])
			axis := aR.Col(i).Cross(bR.Col(j))
			if !consider(axis, ra+rb-proj) {
				return Manifold{}, false
			}
		}
	}

	// Orient the normal from A toward B.
	if bestAxis.Dot(d) < 0 {
		bestAxis = bestAxis.Mul(-1)
	}

	m := Manifold{
		Normal:      bestAxis,
		Penetration: best,
		Points:      contactPoints(aC, aR, aH, bC, bR, bH),
	}
	return m, true
}

// contactPoints approximates the contact patch by collecting the
// vertices of each box that lie inside the other. Falls back to the
// point on A's surface nearest B's center for pure edge-edge contact.
func contactPoints(aC mgl64.Vec3, aR mgl64.Mat3, aH mgl64.Vec3, bC mgl64.Vec3, bR mgl64.Mat3, bH mgl64.Vec3) []mgl64.Vec3 {
	var pts []mgl64.Vec3
	for _, v := range vertices(bC, bR, bH) {
		if containsPoint(aC, aR, aH, v) {
			pts = append(pts, v)
		}
	}
	for _, v := range vertices(aC, aR, aH) {
		if containsPoint(bC, bR, bH, v) {
			pts = append(pts, v)
		}
	}
	if len(pts) == 0 {
		pts = append(pts, closestPoint(aC, aR, aH, bC))
	}
	return pts
}

func vertices(c mgl64.Vec3, r mgl64.Mat3, h mgl64.Vec3) [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	i := 0
	for _, sx := range [2]float64{-1, 1} {
		for _, sy := range [2]float64{-1, 1} {
			for _, sz := range [2]float64{-1, 1} {
				out[i] = c.
					Add(r.Col(0).Mul(sx * h.X())).
					Add(r.Col(1).Mul(sy * h.Y())).
					Add(r.Col(2).Mul(sz * h.Z()))
				i++
			}
		}
	}
	return out
}

func containsPoint(c mgl64.Vec3, r mgl64.Mat3, h mgl64.Vec3, p mgl64.Vec3) bool {
	d := p.Sub(c)
	const eps = 1e-9
	return math.Abs(d.Dot(r.Col(0))) <= h.X()+eps &&
		math.Abs(d.Dot(r.Col(1))) <= h.Y()+eps &&
		math.Abs(d.Dot(r.Col(2))) <= h.Z()+eps
}

// closestPoint clamps target into the oriented box.
func closestPoint(c mgl64.Vec3, r mgl64.Mat3, h mgl64.Vec3, target mgl64.Vec3) mgl64.Vec3 {
	d := target.Sub(c)
	out := c
	hs := [3]float64{h.X(), h.Y(), h.Z()}
	for i := 0; i < 3; i++ {
		dist := d.Dot(r.Col(i))
		if dist > hs[i] {
			dist = hs[i]
		}
		if dist < -hs[i] {
			dist = -hs[i]
		}
		out = out.Add(r.Col(i).Mul(dist))
	}
	return out
}

// aabb computes the world-axis-aligned bounds of an oriented box.
func aabb(c mgl64.Vec3, r mgl64.Mat3, h mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	ext := mgl64.Vec3{
		math.Abs(r.At(0, 0))*h.X() + math.Abs(r.At(0, 1))*h.Y() + math.Abs(r.At(0, 2))*h.Z(),
		math.Abs(r.At(1, 0))*h.X() + math.Abs(r.At(1, 1))*h.Y() + math.Abs(r.At(1, 2))*h.Z(),
		math.Abs(r.At(2, 0))*h.X() + math.Abs(r.At(2, 1))*h.Y() + math.Abs(r.At(2, 2))*h.Z(),
	}
	return c.Sub(ext), c.Add(ext)
}

func aabbOverlap(minA, maxA, minB, maxB mgl64.Vec3) bool {
	return minA.X() <= maxB.X() && minB.X() <= maxA.X() &&
		minA.Y() <= maxB.Y() && minB.Y() <= maxA.Y() &&
		minA.Z() <= maxB.Z() && minB.Z() <= maxA.Z()
}
