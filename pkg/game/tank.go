package game

import (
	"github.com/charmbracelet/harmonica"

	"github.com/jhericks/battle-zone/pkg/math3d"
	"github.com/jhericks/battle-zone/pkg/render"
)

const (
	tankRadius   = 9.0  // collision circle shared by all tanks
	maxSpeed     = 42.0 // full throttle, world units per second
	reverseSpeed = 24.0
	turnRate     = 1.1 // radians per second
	fireCooldown = 1.1 // seconds between player shots
	muzzleReach  = 11.0
)

// Tank is the player vehicle. Speed is animated toward the commanded
// target with a spring so the treads feel like they have mass.
type Tank struct {
	Pose     render.Pose
	Speed    float64
	Cooldown float64

	speedVel float64
	spring   harmonica.Spring
}

func newTank(fps int) *Tank {
	return &Tank{
		// Frequency 3.0, damping 1.0: critically damped throttle
		spring: harmonica.NewSpring(harmonica.FPS(fps), 3.0, 1.0),
	}
}

// Update advances the tank one frame under the held commands. Driving
// into an obstacle kills the momentum instead of clipping through.
func (t *Tank) Update(dt float64, cmd Command, w *World) {
	target := 0.0
	switch {
	case cmd.Has(CmdForward):
		target = maxSpeed
	case cmd.Has(CmdReverse):
		target = -reverseSpeed
	}
	t.Speed, t.speedVel = t.spring.Update(t.Speed, t.speedVel, target)

	// Heading is CCW from above, so a left turn increases it.
	if cmd.Has(CmdTurnLeft) {
		t.Pose.Heading += turnRate * dt
	}
	if cmd.Has(CmdTurnRight) {
		t.Pose.Heading -= turnRate * dt
	}

	step := math3d.Heading(t.Pose.Heading).Scale(t.Speed * dt)
	nx, ny := w.clampArena(t.Pose.X+step.X, t.Pose.Y+step.Y)
	if w.CollideCircle(nx, ny, tankRadius) == nil {
		t.Pose.X, t.Pose.Y = nx, ny
	} else {
		t.Speed = 0
		t.speedVel = 0
	}

	if t.Cooldown > 0 {
		t.Cooldown -= dt
	}
}

// CanFire reports whether the gun has recharged.
func (t *Tank) CanFire() bool {
	return t.Cooldown <= 0
}

// Muzzle returns the world position shells leave from.
func (t *Tank) Muzzle() math3d.Vec3 {
	return t.Pose.At().Add(math3d.Heading(t.Pose.Heading).Scale(muzzleReach)).Add(math3d.V3(0, 0, shellHeight))
}

// Throttle returns the current speed as a -1..1 fraction of maximum,
// for engine-sound pitch.
func (t *Tank) Throttle() float64 {
	if t.Speed >= 0 {
		return t.Speed / maxSpeed
	}
	return t.Speed / reverseSpeed
}
