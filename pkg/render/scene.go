package render

import (
	"sort"

	"github.com/jhericks/battle-zone/pkg/math3d"
)

// visibleFace is a culled, projected face ready for compositing: screen
// points, world-space camera distance for ordering, and stroke color.
type visibleFace struct {
	pts   [4]math3d.Vec2
	n     int
	depth float64
	color Color
}

// DrawScene renders one frame's entities: geometry generation per
// entity, the visibility filter per face, one global far-to-near sort,
// then fill-and-stroke compositing. The context camera must have been
// synced for this frame first. Safe to call with an empty slice.
func (c *RenderContext) DrawScene(entities []Renderable) {
	c.refresh()
	c.geom.Reset()
	c.visible = c.visible[:0]

	for _, e := range entities {
		start := len(c.geom.Faces)
		e.Shape.appendGeometry(e.Pose, &c.geom)
		c.cullFaces(c.geom.Faces[start:], e.Color)
	}

	// Painter's ordering: farthest centroid first, so nearer faces
	// overwrite farther ones. Distances are world-space to keep the
	// ordering free of perspective distortion.
	sort.Slice(c.visible, func(i, j int) bool {
		return c.visible[i].depth > c.visible[j].depth
	})

	for i := range c.visible {
		c.compositeFace(&c.visible[i])
	}
}

// cullFaces runs the visibility filter over freshly generated faces.
// A face survives only if its outward normal faces the camera (dot
// strictly positive; edge-on counts as hidden to avoid flicker) and
// every one of its vertices projects inside the clip range. Survivors
// are appended to the frame's visible list with their screen points.
func (c *RenderContext) cullFaces(faces []Face, color Color) {
	for _, f := range faces {
		normal := c.geom.Normal(f)
		centroid := c.geom.Centroid(f)
		view := c.camera.Position.Sub(centroid)

		if normal.Dot(view) <= 0 {
			continue
		}

		vf := visibleFace{n: f.N, depth: view.Len(), color: color}
		clipped := false
		for i := 0; i < f.N; i++ {
			sx, sy, _, ok := c.Project(c.geom.Verts[f.V[i]])
			if !ok {
				// One vertex out of clip range drops the whole
				// face; there is no partial polygon clipping.
				clipped = true
				break
			}
			vf.pts[i] = math3d.V2(sx, sy)
		}
		if clipped {
			continue
		}

		c.visible = append(c.visible, vf)
	}
}

// compositeFace draws one face: fill the projected polygon with the
// opaque background color (this is what occludes farther faces already
// drawn), then stroke its boundary edges in the face color.
func (c *RenderContext) compositeFace(f *visibleFace) {
	if f.n >= 3 {
		c.fillTriangle(f.pts[0], f.pts[1], f.pts[2], c.Background)
	}
	if f.n == 4 {
		c.fillTriangle(f.pts[0], f.pts[2], f.pts[3], c.Background)
	}

	for i := 0; i < f.n; i++ {
		a := f.pts[i]
		b := f.pts[(i+1)%f.n]
		c.fb.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), f.color)
	}
}
