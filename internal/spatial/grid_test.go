package spatial

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigidsim/internal/body"
)

func mustParticle(t *testing.T, pos mgl64.Vec3, radius float64) *body.Particle {
	t.Helper()
	p, err := body.NewParticle(pos, mgl64.Vec3{}, 1.0, radius)
	if err != nil {
		t.Fatalf("new particle: %v", err)
	}
	return p
}

func TestDetectTouchingPair(t *testing.T) {
	g := NewGrid(mgl64.Vec3{4, 4, 4}, 0.25)
	particles := []*body.Particle{
		mustParticle(t, mgl64.Vec3{0, 0, 0}, 0.1),
		mustParticle(t, mgl64.Vec3{0.05, 0, 0}, 0.1),
		mustParticle(t, mgl64.Vec3{1, 1, 1}, 0.1),
	}

	g.Detect(particles)

	if len(particles[0].Contacts) != 1 || particles[0].Contacts[0] != 1 {
		t.Errorf("particle 0 contacts = %v, want [1]", particles[0].Contacts)
	}
	if len(particles[1].Contacts) != 1 || particles[1].Contacts[0] != 0 {
		t.Errorf("particle 1 contacts = %v, want [0]", particles[1].Contacts)
	}
	if len(particles[2].Contacts) != 0 {
		t.Errorf("distant particle must have no contacts, got %v", particles[2].Contacts)
	}
}

func TestDetectExactSumOfRadiiIsNotContact(t *testing.T) {
	g := NewGrid(mgl64.Vec3{4, 4, 4}, 0.25)
	particles := []*body.Particle{
		mustParticle(t, mgl64.Vec3{0, 0, 0}, 0.1),
		mustParticle(t, mgl64.Vec3{0.2, 0, 0}, 0.1),
	}

	g.Detect(particles)

	if len(particles[0].Contacts) != 0 {
		t.Errorf("distance equal to radius sum must not report contact, got %v", particles[0].Contacts)
	}
}

func TestDetectMatchesBruteForce(t *testing.T) {
	const n = 200
	const radius = 0.1
	rng := rand.New(rand.NewSource(7))

	particles := make([]*body.Particle, n)
	for i := range particles {
		pos := mgl64.Vec3{
			rng.Float64()*3 - 1.5,
			rng.Float64()*3 - 1.5,
			rng.Float64()*3 - 1.5,
		}
		particles[i] = mustParticle(t, pos, radius)
	}

	g := NewGrid(mgl64.Vec3{4, 4, 4}, 2.5*radius)
	g.Detect(particles)

	for i, p := range particles {
		var want []int
		for j, q := range particles {
			if i == j {
				continue
			}
			d := q.Position.Sub(p.Position)
			sum := p.Radius + q.Radius
			if d.Dot(d) < sum*sum {
				want = append(want, j)
			}
		}
		got := append([]int(nil), p.Contacts...)
		sort.Ints(got)
		sort.Ints(want)
		if len(got) != len(want) {
			t.Fatalf("particle %d: grid found %v, brute force %v", i, got, want)
		}
		for k := range got {
			if got[k] != want[k] {
				t.Fatalf("particle %d: grid found %v, brute force %v", i, got, want)
			}
		}
	}
}

func TestDetectClampsOutOfBounds(t *testing.T) {
	g := NewGrid(mgl64.Vec3{2, 2, 2}, 0.25)
	particles := []*body.Particle{
		mustParticle(t, mgl64.Vec3{5, 5, 5}, 0.1),
		mustParticle(t, mgl64.Vec3{5.05, 5, 5}, 0.1),
	}

	// Both clamp into the same corner cell; detection must still work.
	g.Detect(particles)

	if len(particles[0].Contacts) != 1 {
		t.Errorf("out-of-bounds pair must still be detected, got %v", particles[0].Contacts)
	}
}

func BenchmarkDetect3000(b *testing.B) {
	const n = 3000
	rng := rand.New(rand.NewSource(1))
	particles := make([]*body.Particle, n)
	for i := range particles {
		pos := mgl64.Vec3{
			rng.Float64()*6 - 3,
			rng.Float64()*6 - 3,
			rng.Float64()*6 - 3,
		}
		particles[i], _ = body.NewParticle(pos, mgl64.Vec3{}, 1.0, 0.1)
	}
	g := NewGrid(mgl64.Vec3{7, 7, 7}, 0.25)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, p := range particles {
			p.ClearContacts()
		}
		g.Detect(particles)
	}
}
