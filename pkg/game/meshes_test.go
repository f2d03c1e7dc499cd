package game

import (
	"testing"

	"github.com/jhericks/battle-zone/pkg/math3d"
	"github.com/jhericks/battle-zone/pkg/models"
)

// checkMeshOutward verifies every face of a convex mesh winds
// counter-clockwise seen from outside: the face normal must point away
// from the mesh centroid.
func checkMeshOutward(t *testing.T, m *models.Mesh) {
	t.Helper()

	centroid := math3d.Zero3()
	for i := range m.VertexCount() {
		centroid = centroid.Add(m.Vertex(i))
	}
	centroid = centroid.Div(float64(m.VertexCount()))

	for i := range m.FaceCount() {
		f := m.Face(i)
		a, b, c := m.Vertex(f[0]), m.Vertex(f[1]), m.Vertex(f[2])
		normal := b.Sub(a).Cross(c.Sub(a))
		if normal.Len() < 1e-9 {
			t.Errorf("face %d is degenerate", i)
			continue
		}
		faceCenter := a.Add(b).Add(c).Div(3)
		if normal.Dot(faceCenter.Sub(centroid)) <= 0 {
			t.Errorf("face %d %v winds inward", i, f)
		}
	}
}

func checkMeshIndices(t *testing.T, m *models.Mesh) {
	t.Helper()
	for i := range m.FaceCount() {
		for _, v := range m.Face(i) {
			if v < 0 || v >= m.VertexCount() {
				t.Fatalf("face %d references vertex %d of %d", i, v, m.VertexCount())
			}
		}
	}
}

func TestSaucerMesh(t *testing.T) {
	checkMeshIndices(t, saucerMesh)
	checkMeshOutward(t, saucerMesh)
	for i := range saucerMesh.VertexCount() {
		if saucerMesh.Vertex(i).Z < 0 {
			t.Fatalf("vertex %d below the local ground plane", i)
		}
	}
}

func TestMissileMesh(t *testing.T) {
	checkMeshIndices(t, missileMesh)
	checkMeshOutward(t, missileMesh)
	for i := range missileMesh.VertexCount() {
		if missileMesh.Vertex(i).Z < 0 {
			t.Fatalf("vertex %d below the local ground plane", i)
		}
	}

	// The dart points down local +Y, the direction headings face at 0.
	var maxY float64
	var tip int
	for i := range missileMesh.VertexCount() {
		if y := missileMesh.Vertex(i).Y; y > maxY {
			maxY, tip = y, i
		}
	}
	if v := missileMesh.Vertex(tip); v.X != 0 {
		t.Errorf("nose tip at x = %v, want on the centerline", v.X)
	}
}
