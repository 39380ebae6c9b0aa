package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/sim"
)

// Camera projects world space onto the braille canvas with a simple
// rotate-then-perspective transform.
type Camera struct {
	Distance   float64
	RotX, RotY float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 30, RotX: 0.35, RotY: 0.5, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p mgl64.Vec3) mgl64.Vec3 {
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	x, z := p.X()*cy+p.Z()*sy, -p.X()*sy+p.Z()*cy
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	y, z2 := p.Y()*cx-z*sx, p.Y()*sx+z*cx
	return mgl64.Vec3{x, y, z2}
}

// Project maps a world point to sub-pixel canvas coordinates. The
// returned depth orders edges back to front.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.rotate(p).Mul(c.Zoom)
	if rot.Z() >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z())
	minDim := math.Min(float64(sw), float64(sh))
	px := minDim / 3.0
	sx := int(rot.X()*scale*px) + sw/2
	sy := int(-rot.Y()*scale*px) + sh/2
	return sx, sy, rot.Z(), sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type edge struct {
	a, b  mgl64.Vec3
	point bool
}

var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func boxWireframe(b *body.Box) []edge {
	r := b.Orientation.Mat4().Mat3()
	h := b.HalfExtents
	var corners [8]mgl64.Vec3
	for i := 0; i < 8; i++ {
		local := mgl64.Vec3{
			h.X() * signBit(i, 0),
			h.Y() * signBit(i, 1),
			h.Z() * signBit(i, 2),
		}
		corners[i] = b.Center.Add(r.Mul3x1(local))
	}
	edges := make([]edge, 0, len(boxEdges))
	for _, e := range boxEdges {
		edges = append(edges, edge{a: corners[e[0]], b: corners[e[1]]})
	}
	return edges
}

func signBit(i, bit int) float64 {
	if i&(1<<bit) != 0 {
		return 1
	}
	return -1
}

// RenderWorld draws every particle and box wireframe back to front.
func RenderWorld(c *Canvas, cam *Camera, w *sim.World) {
	subW, subH := c.Width*2, c.Height*4

	edges := make([]edge, 0, len(w.Boxes())*12+len(w.Particles()))
	for _, b := range w.Boxes() {
		if b.Static() {
			continue
		}
		edges = append(edges, boxWireframe(b)...)
	}
	for _, p := range w.Particles() {
		edges = append(edges, edge{a: p.Position, b: p.Position, point: true})
	}

	type projected struct {
		x1, y1, x2, y2 int
		depth          float64
		point          bool
	}
	proj := make([]projected, 0, len(edges))
	for _, e := range edges {
		x1, y1, d1, v1 := cam.Project(e.a, subW, subH)
		x2, y2, d2, v2 := cam.Project(e.b, subW, subH)
		if v1 || v2 {
			proj = append(proj, projected{x1, y1, x2, y2, (d1 + d2) / 2, e.point})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })

	for _, e := range proj {
		if e.point {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}
