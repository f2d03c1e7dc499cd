package render

import (
	"math"

	"github.com/jhericks/battle-zone/pkg/math3d"
)

// Project maps a world-space point to screen coordinates.
// Returns (screenX, screenY, depth, visible).
//
// The point is translated into camera-relative coordinates, then the
// ground-plane pair is rotated by the negative of the camera yaw,
// splitting it into lateral (positive right) and forward components.
// Points at or behind the near plane, or beyond the far plane, are not
// visible; callers must check the flag before using the coordinates.
//
// Sign convention, fixed once for the whole pipeline: screen X grows
// right, screen Y grows down, and world height above the eye projects
// above the viewport center. Depth is the forward distance along the
// view axis, clamped below by the near plane.
func (c *RenderContext) Project(p math3d.Vec3) (sx, sy, depth float64, visible bool) {
	c.refresh()

	rx := p.X - c.camera.Position.X
	ry := p.Y - c.camera.Position.Y

	lateral := rx*c.cosYaw + ry*c.sinYaw
	forward := -rx*c.sinYaw + ry*c.cosYaw

	if forward <= c.camera.Near {
		return 0, 0, 0, false
	}
	if forward > c.camera.Far {
		return 0, 0, 0, false
	}

	depth = math.Max(forward, c.camera.Near)
	vertical := p.Z - c.camera.Position.Z

	sx = (lateral/depth)*c.focal + c.halfW
	sy = c.halfH - (vertical/depth)*c.focal
	return sx, sy, depth, true
}
