package game

import (
	"math"
	"math/rand"

	"github.com/jhericks/battle-zone/pkg/math3d"
	"github.com/jhericks/battle-zone/pkg/render"
)

// ObstacleKind selects the silhouette of a world obstacle.
type ObstacleKind int

const (
	ObstacleBox ObstacleKind = iota
	ObstaclePyramid
)

// Obstacle is an immovable arena prop. Obstacles block tanks and stop
// shells but cannot be destroyed.
type Obstacle struct {
	Kind   ObstacleKind
	Pose   render.Pose
	Size   float64 // footprint width
	Radius float64 // collision circle
}

const (
	arenaRadius     = 450 // scatter radius for obstacles
	arenaLimit      = 520 // hard edge tanks cannot drive past
	spawnClearing   = 90  // obstacle-free circle around the origin
	obstacleGap     = 70  // minimum distance between obstacle centers
	obstacleCount   = 26
	obstacleMinSz   = 16.0
	obstacleSizeVar = 12.0
	losStep         = 8.0 // sample interval for line-of-sight checks
)

// World holds the static arena the battle happens in.
type World struct {
	Obstacles []Obstacle
}

// newWorld scatters obstacles around the origin, keeping the player
// spawn clear. Placement is rejection-sampled so props never overlap.
func newWorld(rng *rand.Rand) *World {
	w := &World{Obstacles: make([]Obstacle, 0, obstacleCount)}

	for len(w.Obstacles) < obstacleCount {
		angle := rng.Float64() * 2 * math.Pi
		dist := spawnClearing + rng.Float64()*(arenaRadius-spawnClearing)
		x := -math.Sin(angle) * dist
		y := math.Cos(angle) * dist

		size := obstacleMinSz + rng.Float64()*obstacleSizeVar
		radius := size * 0.75
		if w.CollideCircle(x, y, obstacleGap) != nil {
			continue
		}

		kind := ObstacleBox
		if rng.Intn(2) == 1 {
			kind = ObstaclePyramid
		}
		w.Obstacles = append(w.Obstacles, Obstacle{
			Kind:   kind,
			Pose:   render.Pose{X: x, Y: y, Heading: rng.Float64() * 2 * math.Pi},
			Size:   size,
			Radius: radius,
		})
	}
	return w
}

// CollideCircle returns the first obstacle whose collision circle
// intersects the given circle, or nil.
func (w *World) CollideCircle(x, y, r float64) *Obstacle {
	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		dx := o.Pose.X - x
		dy := o.Pose.Y - y
		reach := o.Radius + r
		if dx*dx+dy*dy < reach*reach {
			return o
		}
	}
	return nil
}

// LineBlocked reports whether an obstacle sits on the straight line
// between two ground points, sampled at shell width. The AI uses it to
// hold fire when a prop would eat the shot.
func (w *World) LineBlocked(x0, y0, x1, y1 float64) bool {
	dx := x1 - x0
	dy := y1 - y0
	dist := math.Hypot(dx, dy)
	if dist < losStep {
		return false
	}
	steps := int(dist / losStep)
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		if w.CollideCircle(x0+dx*t, y0+dy*t, shellRadius) != nil {
			return true
		}
	}
	return false
}

// clampArena pulls a position back inside the drivable field. The
// battlefield has no walls to draw; the edge just stops giving ground.
func (w *World) clampArena(x, y float64) (float64, float64) {
	d := math.Hypot(x, y)
	if d <= arenaLimit {
		return x, y
	}
	s := arenaLimit / d
	return x * s, y * s
}

// Shape returns the renderable solid for an obstacle.
func (o *Obstacle) Shape() render.Shape {
	switch o.Kind {
	case ObstaclePyramid:
		return render.PyramidShape{W: o.Size, D: o.Size, H: o.Size * 1.2}
	default:
		return render.GroundBox(o.Size, o.Size, o.Size*0.9)
	}
}

// spawnPoint picks a position on a ring around the player that is not
// inside an obstacle.
func (w *World) spawnPoint(rng *rand.Rand, around math3d.Vec3, minDist, maxDist float64) (float64, float64) {
	for {
		angle := rng.Float64() * 2 * math.Pi
		dist := minDist + rng.Float64()*(maxDist-minDist)
		x := around.X - math.Sin(angle)*dist
		y := around.Y + math.Cos(angle)*dist
		if w.CollideCircle(x, y, tankRadius*2) == nil {
			return x, y
		}
	}
}
