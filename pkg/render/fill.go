package render

import (
	"math"

	"github.com/jhericks/battle-zone/pkg/math3d"
)

// edgeCoeffs returns the A, B, C coefficients of the signed edge
// function edge(x,y) = A*x + B*y + C for the directed edge (x0,y0)→(x1,y1).
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1
	B = x1 - x0
	C = x0*y1 - x1*y0
	return
}

// fillTriangle rasterizes a solid screen-space triangle into the
// framebuffer using incrementally evaluated edge functions. Winding is
// normalized first, so triangles from either projected orientation
// fill; zero-area triangles are skipped. There is no depth test; the
// painter's sort has already established drawing order.
func (c *RenderContext) fillTriangle(p0, p1, p2 math3d.Vec2, col Color) {
	area2 := (p1.X-p0.X)*(p2.Y-p0.Y) - (p1.Y-p0.Y)*(p2.X-p0.X)
	if area2 == 0 {
		return
	}
	if area2 < 0 {
		p1, p2 = p2, p1
	}

	minX := int(math.Max(0, math.Floor(min3(p0.X, p1.X, p2.X))))
	maxX := int(math.Min(float64(c.fb.Width-1), math.Ceil(max3(p0.X, p1.X, p2.X))))
	minY := int(math.Max(0, math.Floor(min3(p0.Y, p1.Y, p2.Y))))
	maxY := int(math.Min(float64(c.fb.Height-1), math.Ceil(max3(p0.Y, p1.Y, p2.Y))))

	if minX > maxX || minY > maxY {
		return
	}

	A0, B0, C0 := edgeCoeffs(p1.X, p1.Y, p2.X, p2.Y)
	A1, B1, C1 := edgeCoeffs(p2.X, p2.Y, p0.X, p0.Y)
	A2, B2, C2 := edgeCoeffs(p0.X, p0.Y, p1.X, p1.Y)

	px := float64(minX) + 0.5
	py := float64(minY) + 0.5

	w0Row := A0*px + B0*py + C0
	w1Row := A1*px + B1*py + C1
	w2Row := A2*px + B2*py + C2

	width := c.fb.Width
	pixels := c.fb.Pixels

	for y := minY; y <= maxY; y++ {
		w0 := w0Row
		w1 := w1Row
		w2 := w2Row
		rowOffset := y * width

		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				pixels[rowOffset+x] = col
			}
			w0 += A0
			w1 += A1
			w2 += A2
		}

		w0Row += B0
		w1Row += B1
		w2Row += B2
	}
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
