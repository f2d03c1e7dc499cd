package game

import (
	"math"

	"github.com/jhericks/battle-zone/pkg/render"
)

const (
	radarRange     = 320.0
	radarSweepRate = 2.1 // radians per second, one revolution ~3s
)

// Radar is the circular threat display at the top of the screen.
type Radar struct {
	sweep float64
}

// Update advances the beam. Reports true each time it completes a
// revolution, which is when the ping sounds.
func (r *Radar) Update(dt float64) bool {
	r.sweep += radarSweepRate * dt
	if r.sweep >= 2*math.Pi {
		r.sweep = math.Mod(r.sweep, 2*math.Pi)
		return true
	}
	return false
}

// Draw renders the dial, sweep beam, and enemy blips into the
// framebuffer. Bearings are relative to the player heading so ahead is
// always up.
func (r *Radar) Draw(fb *render.Framebuffer, g *Game) {
	radius := min(fb.Width/10, fb.Height/7)
	if radius < 6 {
		return
	}
	cx := fb.Width / 2
	cy := radius + 2

	// Dial outline as a segment loop.
	const steps = 24
	px := cx
	py := cy - radius
	for i := 1; i <= steps; i++ {
		a := float64(i) / steps * 2 * math.Pi
		nx := cx + int(math.Sin(a)*float64(radius))
		ny := cy - int(math.Cos(a)*float64(radius))
		fb.DrawLine(px, py, nx, ny, render.ColorDimGreen)
		px, py = nx, ny
	}

	// Sweep beam.
	bx := cx + int(math.Sin(r.sweep)*float64(radius))
	by := cy - int(math.Cos(r.sweep)*float64(radius))
	fb.DrawLine(cx, cy, bx, by, render.ColorGreen)

	// Blips. Positive bearing means the target is to the left.
	for _, e := range g.enemies {
		dx := e.Pose.X - g.player.Pose.X
		dy := e.Pose.Y - g.player.Pose.Y
		dist := math.Hypot(dx, dy)
		if dist > radarRange {
			continue
		}
		b := angleDiff(headingToward(dx, dy), g.player.Pose.Heading)
		rr := dist / radarRange * float64(radius)
		ex := cx - int(math.Sin(b)*rr)
		ey := cy - int(math.Cos(b)*rr)
		fb.DrawRect(ex-1, ey-1, 2, 2, render.ColorRed)
	}
}

// DrawReticle draws the gunsight brackets at screen center.
func DrawReticle(fb *render.Framebuffer, col render.Color) {
	cx, cy := fb.Width/2, fb.Height/2
	gap := max(fb.Height/40, 2)
	arm := gap * 3

	fb.DrawLine(cx-arm, cy, cx-gap, cy, col)
	fb.DrawLine(cx+gap, cy, cx+arm, cy, col)
	fb.DrawLine(cx, cy-arm, cx, cy-gap, col)
	fb.DrawLine(cx, cy+gap, cx, cy+arm, col)
}
