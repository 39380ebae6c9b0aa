package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigidsim/internal/body"
)

var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func (a *App) drawSim() {
	rl.BeginMode3D(a.Camera)

	dims := a.Cfg.WorldDims
	rl.DrawCubeWires(rl.NewVector3(0, 0, 0), float32(dims[0]), float32(dims[1]), float32(dims[2]), ColBounds)

	for _, p := range a.World.Particles() {
		rl.DrawSphere(vec3(p.Position), float32(p.Radius), ColParticle)
	}
	for _, b := range a.World.Boxes() {
		if b.Static() {
			continue
		}
		drawBox(b)
	}

	rl.EndMode3D()
}

// drawBox renders an oriented box as a wireframe of its rotated edges,
// since the axis-aligned cube primitives cannot express orientation.
func drawBox(b *body.Box) {
	r := b.Orientation.Mat4().Mat3()
	h := b.HalfExtents
	var corners [8]rl.Vector3
	for i := 0; i < 8; i++ {
		local := mgl64.Vec3{
			h.X() * cornerSign(i, 0),
			h.Y() * cornerSign(i, 1),
			h.Z() * cornerSign(i, 2),
		}
		corners[i] = vec3(b.Center.Add(r.Mul3x1(local)))
	}
	for _, e := range boxEdges {
		rl.DrawLine3D(corners[e[0]], corners[e[1]], ColBox)
	}
}

func cornerSign(i, bit int) float64 {
	if i&(1<<bit) != 0 {
		return 1
	}
	return -1
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

func float32sin(a float32) float32 { return float32(math.Sin(float64(a))) }
func float32cos(a float32) float32 { return float32(math.Cos(float64(a))) }
