package render

import (
	"github.com/jhericks/battle-zone/pkg/math3d"
)

// Face is one polygon of a generated shape: three or four indices into
// the frame's vertex arena, wound so that the cross product of the
// first three vertices points outward. Faces are transient, rebuilt
// every frame; none survive between frames.
type Face struct {
	V [4]int
	N int // vertex count, 3 or 4
}

// EdgeCount returns the number of boundary edges (equal to N).
func (f Face) EdgeCount() int {
	return f.N
}

// Edge returns the i-th boundary edge as a vertex index pair, following
// the face winding.
func (f Face) Edge(i int) (a, b int) {
	return f.V[i], f.V[(i+1)%f.N]
}

// Geometry is the reusable per-frame vertex/face arena that shapes
// append into. Reset clears it without releasing storage.
type Geometry struct {
	Verts []math3d.Vec3
	Faces []Face
}

// Reset empties the arena, keeping capacity for the next frame.
func (g *Geometry) Reset() {
	g.Verts = g.Verts[:0]
	g.Faces = g.Faces[:0]
}

// Centroid returns the vertex average of a face.
func (g *Geometry) Centroid(f Face) math3d.Vec3 {
	var sum math3d.Vec3
	for i := 0; i < f.N; i++ {
		sum = sum.Add(g.Verts[f.V[i]])
	}
	return sum.Div(float64(f.N))
}

// Normal returns the (un-normalized) outward face normal from the
// first three vertices. Only its sign against a view vector matters.
func (g *Geometry) Normal(f Face) math3d.Vec3 {
	v0 := g.Verts[f.V[0]]
	e1 := g.Verts[f.V[1]].Sub(v0)
	e2 := g.Verts[f.V[2]].Sub(v0)
	return e1.Cross(e2)
}

// Shape generates world-space geometry for one renderable kind. The set
// is closed: box, pyramid, tank, and loaded mesh. Each implementation
// appends its vertices and outward-wound faces for the given pose into
// the frame arena; degenerate dimensions are not rejected, they just
// produce zero-area faces that cull and draw harmlessly.
type Shape interface {
	appendGeometry(pose Pose, g *Geometry)
}

// Renderable is one entity as the renderer sees it: a pose, a shape,
// and the stroke color for its edges. The renderer reads these once per
// frame and never mutates them.
type Renderable struct {
	Pose  Pose
	Shape Shape
	Color Color
}

// BoxShape is an axis-aligned rectangular solid before the pose heading
// is applied: W along local X, D along local Y, H along local Z. Z is
// the height of the box center above the ground plane, so Z = H/2 rests
// the box on the ground.
type BoxShape struct {
	W, D, H float64
	Z       float64
}

// GroundBox returns a box resting on the ground plane.
func GroundBox(w, d, h float64) BoxShape {
	return BoxShape{W: w, D: d, H: h, Z: h / 2}
}

func (b BoxShape) appendGeometry(pose Pose, g *Geometry) {
	bottom := b.Z - b.H/2
	appendPrism(g, pose, math3d.V3(0, 0, bottom), b.W, b.D, b.W, b.D, b.H)
}

// PyramidShape is a square-ish pyramid: W×D base resting on the ground,
// apex centered at height H.
type PyramidShape struct {
	W, D, H float64
}

func (p PyramidShape) appendGeometry(pose Pose, g *Geometry) {
	hw, hd := p.W/2, p.D/2
	base := len(g.Verts)

	local := [5]math3d.Vec3{
		{X: -hw, Y: -hd, Z: 0},
		{X: hw, Y: -hd, Z: 0},
		{X: hw, Y: hd, Z: 0},
		{X: -hw, Y: hd, Z: 0},
		{X: 0, Y: 0, Z: p.H},
	}
	for _, v := range local {
		g.Verts = append(g.Verts, placeVert(v, pose))
	}

	apex := base + 4
	g.Faces = append(g.Faces,
		Face{V: [4]int{base + 0, base + 1, apex}, N: 3}, // south slope
		Face{V: [4]int{base + 1, base + 2, apex}, N: 3}, // east slope
		Face{V: [4]int{base + 2, base + 3, apex}, N: 3}, // north slope
		Face{V: [4]int{base + 3, base + 0, apex}, N: 3}, // west slope
		Face{V: [4]int{base + 0, base + 3, base + 2, base + 1}, N: 4}, // base, facing down
	)
}

// TankShape is the composite rigid body: a trapezoidal-prism hull whose
// bottom quad is wider than its top (tread flare), a box turret sitting
// on the hull, and a thin box barrel extending forward from the turret
// front at half turret height. All three sub-shapes share the pose's
// single heading rotation and translation, applied in local space
// before normals are computed.
type TankShape struct {
	HullBottomW, HullBottomD float64
	HullTopW, HullTopD       float64
	HullH                    float64

	TurretW, TurretD, TurretH float64

	BarrelLen, BarrelThick float64
}

// StandardTank returns the shared tank dimensions used for both the
// player and enemy vehicles.
func StandardTank() TankShape {
	return TankShape{
		HullBottomW: 12, HullBottomD: 16,
		HullTopW: 8, HullTopD: 12,
		HullH:   3,
		TurretW: 6, TurretD: 7, TurretH: 2,
		BarrelLen: 7, BarrelThick: 0.7,
	}
}

// Height returns the total height of the hull plus turret.
func (t TankShape) Height() float64 {
	return t.HullH + t.TurretH
}

// BarrelTip returns the world position of the barrel's muzzle end for a
// pose (where shells spawn).
func (t TankShape) BarrelTip(pose Pose) math3d.Vec3 {
	local := math3d.V3(0, t.TurretD/2+t.BarrelLen, t.HullH+t.TurretH/2)
	return placeVert(local, pose)
}

func (t TankShape) appendGeometry(pose Pose, g *Geometry) {
	// Hull: trapezoidal prism, bottom wider than top.
	appendPrism(g, pose, math3d.Zero3(),
		t.HullBottomW, t.HullBottomD, t.HullTopW, t.HullTopD, t.HullH)

	// Turret: box on the hull roof.
	appendPrism(g, pose, math3d.V3(0, 0, t.HullH),
		t.TurretW, t.TurretD, t.TurretW, t.TurretD, t.TurretH)

	// Barrel: thin box from the turret front face, at half turret height.
	barrelBottom := t.HullH + t.TurretH/2 - t.BarrelThick/2
	appendPrism(g, pose, math3d.V3(0, t.TurretD/2+t.BarrelLen/2, barrelBottom),
		t.BarrelThick, t.BarrelLen, t.BarrelThick, t.BarrelLen, t.BarrelThick)
}

// WireMesh is the geometry source behind MeshShape: triangles indexed
// into a vertex list, wound counterclockwise viewed from outside.
// models.Mesh satisfies it.
type WireMesh interface {
	VertexCount() int
	Vertex(i int) math3d.Vec3
	FaceCount() int
	Face(i int) [3]int
}

// MeshShape renders a loaded model through the same pipeline as the
// procedural shapes. Z lifts the whole mesh off the ground, for
// airborne entities; Scale multiplies the mesh uniformly about its
// origin (0 means 1), so a unit-footprint model can stand in for
// obstacles of any size.
type MeshShape struct {
	Mesh  WireMesh
	Z     float64
	Scale float64
}

func (m MeshShape) appendGeometry(pose Pose, g *Geometry) {
	scale := m.Scale
	if scale == 0 {
		scale = 1
	}
	lift := math3d.V3(0, 0, m.Z)
	base := len(g.Verts)
	for i := 0; i < m.Mesh.VertexCount(); i++ {
		g.Verts = append(g.Verts, placeVert(m.Mesh.Vertex(i).Scale(scale).Add(lift), pose))
	}
	for i := 0; i < m.Mesh.FaceCount(); i++ {
		f := m.Mesh.Face(i)
		g.Faces = append(g.Faces, Face{
			V: [4]int{base + f[0], base + f[1], base + f[2]},
			N: 3,
		})
	}
}

// placeVert transforms a shape-local vertex to world space: rotate by
// the pose heading about the vertical axis, then translate to the
// pose's ground position.
func placeVert(local math3d.Vec3, pose Pose) math3d.Vec3 {
	v := local.RotateZ(pose.Heading)
	v.X += pose.X
	v.Y += pose.Y
	return v
}

// appendPrism appends the 8 vertices and 6 outward-wound quad faces of
// a prism with rectangular bottom (bw×bd) and top (tw×td) quads. off is
// the local offset of the bottom quad's center; h is the prism height.
// Equal bottom and top dimensions give a box; a narrower top gives the
// trapezoidal hull. The side faces stay planar for any such pair.
func appendPrism(g *Geometry, pose Pose, off math3d.Vec3, bw, bd, tw, td, h float64) {
	base := len(g.Verts)

	hbw, hbd := bw/2, bd/2
	htw, htd := tw/2, td/2

	local := [8]math3d.Vec3{
		{X: -hbw, Y: -hbd, Z: 0}, // 0: bottom SW
		{X: hbw, Y: -hbd, Z: 0},  // 1: bottom SE
		{X: hbw, Y: hbd, Z: 0},   // 2: bottom NE
		{X: -hbw, Y: hbd, Z: 0},  // 3: bottom NW
		{X: -htw, Y: -htd, Z: h}, // 4: top SW
		{X: htw, Y: -htd, Z: h},  // 5: top SE
		{X: htw, Y: htd, Z: h},   // 6: top NE
		{X: -htw, Y: htd, Z: h},  // 7: top NW
	}
	for _, v := range local {
		g.Verts = append(g.Verts, placeVert(v.Add(off), pose))
	}

	g.Faces = append(g.Faces,
		Face{V: [4]int{base + 0, base + 1, base + 5, base + 4}, N: 4}, // front (-Y)
		Face{V: [4]int{base + 1, base + 2, base + 6, base + 5}, N: 4}, // right (+X)
		Face{V: [4]int{base + 2, base + 3, base + 7, base + 6}, N: 4}, // back (+Y)
		Face{V: [4]int{base + 3, base + 0, base + 4, base + 7}, N: 4}, // left (-X)
		Face{V: [4]int{base + 4, base + 5, base + 6, base + 7}, N: 4}, // top (+Z)
		Face{V: [4]int{base + 0, base + 3, base + 2, base + 1}, N: 4}, // bottom (-Z)
	)
}
