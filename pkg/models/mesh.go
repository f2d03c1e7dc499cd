// Package models provides wireframe model loading for battle-zone.
package models

import (
	"github.com/jhericks/battle-zone/pkg/math3d"
)

// Mesh is a wireframe model: vertex positions plus triangle faces with
// outward winding. Loaded models stand in for the built-in procedural
// shapes when a model pack is supplied.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    [][3]int

	// BaseColor is the RGBA base color factor (0-1 range) from the
	// model file's first material; HasColor reports whether one was
	// present. Strokes fall back to the entity color otherwise.
	BaseColor [4]float64
	HasColor  bool

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([][3]int, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of triangle faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// Vertex returns the position of vertex i.
// Implements render.WireMesh.
func (m *Mesh) Vertex(i int) math3d.Vec3 {
	return m.Vertices[i]
}

// Face returns the vertex indices for face i.
// Implements render.WireMesh.
func (m *Mesh) Face(i int) [3]int {
	return m.Faces[i]
}

// Translate moves all vertices by v.
func (m *Mesh) Translate(v math3d.Vec3) {
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Add(v)
	}
	m.BoundsMin = m.BoundsMin.Add(v)
	m.BoundsMax = m.BoundsMax.Add(v)
}

// ScaleUniform scales all vertices by s about the origin.
func (m *Mesh) ScaleUniform(s float64) {
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Scale(s)
	}
	m.CalculateBounds()
}

// NormalizeFootprint rescales the mesh so its largest horizontal
// dimension equals width, centers it on the origin in X and Y, and
// drops its base to z=0. Loaded models come in arbitrary units; this
// puts them in world units matching the built-in shapes.
func (m *Mesh) NormalizeFootprint(width float64) {
	m.CalculateBounds()
	size := m.Size()
	maxDim := math3d.V2(size.X, size.Y)
	largest := maxDim.X
	if maxDim.Y > largest {
		largest = maxDim.Y
	}
	if largest > 0 && width > 0 {
		m.ScaleUniform(width / largest)
	}
	center := m.Center()
	m.Translate(math3d.V3(-center.X, -center.Y, -m.BoundsMin.Z))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([][3]int, len(m.Faces)),
		BaseColor: m.BaseColor,
		HasColor:  m.HasColor,
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}
