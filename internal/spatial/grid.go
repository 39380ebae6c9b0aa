// Package spatial provides the uniform-grid broad phase for
// particle-particle contact detection.
package spatial

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigidsim/internal/body"
)

// Grid partitions a bounded volume centered at the origin into uniform
// cells. Cells are sized relative to particle radius so that touching
// particles always land in the same or adjacent cells, bounding
// pairwise tests to the 27-cell neighborhood.
type Grid struct {
	cellSize   float64
	half       mgl64.Vec3
	nx, ny, nz int
	cells      [][]int
}

// NewGrid creates a grid covering a volume of the given dims. cellSize
// must be at least the largest particle diameter.
func NewGrid(dims mgl64.Vec3, cellSize float64) *Grid {
	half := dims.Mul(0.5)
	nx := int(dims.X()/cellSize) + 1
	ny := int(dims.Y()/cellSize) + 1
	nz := int(dims.Z()/cellSize) + 1

	cells := make([][]int, nx*ny*nz)
	for i := range cells {
		cells[i] = make([]int, 0, 4)
	}

	return &Grid{
		cellSize: cellSize,
		half:     half,
		nx:       nx,
		ny:       ny,
		nz:       nz,
		cells:    cells,
	}
}

// Dims reports the covered volume.
func (g *Grid) Dims() mgl64.Vec3 {
	return g.half.Mul(2)
}

// Clear removes all entries, keeping cell capacity.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a particle ID at the given position. Positions outside
// the bounds clamp to the boundary cells.
func (g *Grid) Insert(id int, pos mgl64.Vec3) {
	idx := g.index(pos)
	g.cells[idx] = append(g.cells[idx], id)
}

func (g *Grid) coords(pos mgl64.Vec3) (int, int, int) {
	cx := clamp(int((pos.X()+g.half.X())/g.cellSize), 0, g.nx-1)
	cy := clamp(int((pos.Y()+g.half.Y())/g.cellSize), 0, g.ny-1)
	cz := clamp(int((pos.Z()+g.half.Z())/g.cellSize), 0, g.nz-1)
	return cx, cy, cz
}

func (g *Grid) index(pos mgl64.Vec3) int {
	cx, cy, cz := g.coords(pos)
	return (cz*g.ny+cy)*g.nx + cx
}

// Detect repopulates the grid from current particle positions and
// fills each particle's contact-partner list with the IDs of particles
// whose center distance is below the sum of radii. Partner lists are
// symmetric.
func (g *Grid) Detect(particles []*body.Particle) {
	g.Clear()
	for id, p := range particles {
		g.Insert(id, p.Position)
	}

	for i, p := range particles {
		cx, cy, cz := g.coords(p.Position)
		for dz := -1; dz <= 1; dz++ {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					x, y, z := cx+dx, cy+dy, cz+dz
					if x < 0 || x >= g.nx || y < 0 || y >= g.ny || z < 0 || z >= g.nz {
						continue
					}
					for _, j := range g.cells[(z*g.ny+y)*g.nx+x] {
						if j <= i {
							continue
						}
						q := particles[j]
						sum := p.Radius + q.Radius
						d := q.Position.Sub(p.Position)
						if d.Dot(d) < sum*sum {
							p.Contacts = append(p.Contacts, j)
							q.Contacts = append(q.Contacts, i)
						}
					}
				}
			}
		}
	}
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
