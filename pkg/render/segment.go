package render

import (
	"github.com/jhericks/battle-zone/pkg/math3d"
)

// offscreenMargin extends the viewport for the segment cull so strokes
// that clip the corner of the screen are not dropped early.
const offscreenMargin = 24.0

// DrawSegment projects and strokes a free-standing world-space line
// segment (barrel streaks, particles, grid lines). The segment is
// dropped if either endpoint fails the clip range, or if both projected
// endpoints lie beyond the same viewport edge by more than the margin.
func (c *RenderContext) DrawSegment(a, b math3d.Vec3, col Color) {
	ax, ay, _, ok := c.Project(a)
	if !ok {
		return
	}
	bx, by, _, ok := c.Project(b)
	if !ok {
		return
	}
	if segmentOffscreen(ax, ay, bx, by, float64(c.fb.Width), float64(c.fb.Height)) {
		return
	}
	c.fb.DrawLine(int(ax), int(ay), int(bx), int(by), col)
}

// segmentOffscreen reports whether both endpoints lie beyond the same
// viewport edge, extended by the cull margin. Segments that straddle
// the viewport are kept; the line rasterizer bounds-checks per pixel.
func segmentOffscreen(ax, ay, bx, by, w, h float64) bool {
	return (ax < -offscreenMargin && bx < -offscreenMargin) ||
		(ax > w+offscreenMargin && bx > w+offscreenMargin) ||
		(ay < -offscreenMargin && by < -offscreenMargin) ||
		(ay > h+offscreenMargin && by > h+offscreenMargin)
}
