package render

import (
	"math"

	"github.com/jhericks/battle-zone/pkg/math3d"
)

// DrawGroundGrid strokes a square lattice on the ground plane around
// the camera, giving the horizon a sense of motion. Lines are spaced
// at twice GridSpacing so the grid stays sparser than the obstacles it
// shares the floor with, and are emitted as per-cell segments so the
// near-plane clip only eats the pieces actually behind the camera.
func (c *RenderContext) DrawGroundGrid(col Color) {
	step := c.GridSpacing * 2
	if step <= 0 {
		return
	}
	r := c.GridRadius
	baseX := math.Floor(c.camera.Position.X/step) * step
	baseY := math.Floor(c.camera.Position.Y/step) * step
	for x := baseX - r; x <= baseX+r; x += step {
		for y := baseY - r; y <= baseY+r; y += step {
			c.DrawSegment(math3d.V3(x, y, 0), math3d.V3(x, y+step, 0), col)
			c.DrawSegment(math3d.V3(x, y, 0), math3d.V3(x+step, y, 0), col)
		}
	}
}
