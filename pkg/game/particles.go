package game

import (
	"math"
	"math/rand"

	"github.com/jhericks/battle-zone/pkg/math3d"
	"github.com/jhericks/battle-zone/pkg/render"
)

const (
	particleGravity = 50.0
	particleHalfLen = 2.2
)

// particle is one tumbling line fragment thrown by an explosion.
type particle struct {
	pos  math3d.Vec3
	vel  math3d.Vec3
	dir  math3d.Vec3 // segment orientation, unit length
	spin float64     // yaw rate of the fragment
	ttl  float64
}

// Particles animates explosion debris. Fragments fly ballistically and
// die when they hit the ground or burn out.
type Particles struct {
	parts []particle
}

// Spawn throws count fragments outward from pos.
func (ps *Particles) Spawn(rng *rand.Rand, pos math3d.Vec3, count int, speed float64) {
	for range count {
		angle := rng.Float64() * 2 * math.Pi
		out := math3d.Heading(angle).Scale(speed * (0.4 + rng.Float64()*0.6))
		ps.parts = append(ps.parts, particle{
			pos:  pos,
			vel:  out.Add(math3d.V3(0, 0, speed*(0.3+rng.Float64()*0.7))),
			dir:  math3d.Heading(rng.Float64() * 2 * math.Pi),
			spin: (rng.Float64() - 0.5) * 12,
			ttl:  1.2 + rng.Float64()*0.8,
		})
	}
}

// Update advances all fragments, compacting out the dead ones.
func (ps *Particles) Update(dt float64) {
	alive := ps.parts[:0]
	for i := range ps.parts {
		p := &ps.parts[i]
		p.ttl -= dt
		p.vel.Z -= particleGravity * dt
		p.pos = p.pos.Add(p.vel.Scale(dt))
		p.dir = p.dir.RotateZ(p.spin * dt)
		if p.ttl <= 0 || p.pos.Z < 0 {
			continue
		}
		alive = append(alive, *p)
	}
	ps.parts = alive
}

// Draw strokes every live fragment.
func (ps *Particles) Draw(c *render.RenderContext, col render.Color) {
	for i := range ps.parts {
		p := &ps.parts[i]
		half := p.dir.Scale(particleHalfLen)
		c.DrawSegment(p.pos.Sub(half), p.pos.Add(half), col)
	}
}

// Active reports whether any fragments are still flying.
func (ps *Particles) Active() bool {
	return len(ps.parts) > 0
}
