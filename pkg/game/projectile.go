package game

import (
	"github.com/jhericks/battle-zone/pkg/math3d"
	"github.com/jhericks/battle-zone/pkg/render"
)

const (
	shellSpeed  = 130.0
	shellRange  = 380.0
	shellRadius = 2.0
	shellHeight = 4.0 // barrel height; shells fly flat
)

// Shell is a round in flight. Heading doubles as travel direction.
type Shell struct {
	Pose       render.Pose
	FromPlayer bool

	travel float64
}

// step advances the shell and reports whether it is still flying.
// Shells die against obstacles and at the end of their range.
func (s *Shell) step(dt float64, w *World) bool {
	move := math3d.Heading(s.Pose.Heading).Scale(shellSpeed * dt)
	s.Pose.X += move.X
	s.Pose.Y += move.Y
	s.travel += shellSpeed * dt

	if s.travel > shellRange {
		return false
	}
	return w.CollideCircle(s.Pose.X, s.Pose.Y, shellRadius) == nil
}

// Pos returns the shell's world position.
func (s *Shell) Pos() math3d.Vec3 {
	return math3d.V3(s.Pose.X, s.Pose.Y, shellHeight)
}

// hits reports whether the shell is within reach of a target circle.
func (s *Shell) hits(x, y, radius float64) bool {
	dx := s.Pose.X - x
	dy := s.Pose.Y - y
	reach := radius + shellRadius
	return dx*dx+dy*dy < reach*reach
}
