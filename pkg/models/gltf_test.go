package models

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/jhericks/battle-zone/pkg/math3d"
)

// buildTriangleDoc assembles an in-memory document with one indexed
// triangle, laid out the way gltf.Open returns a GLB with an embedded
// buffer: positions first, then uint16 indices.
func buildTriangleDoc(positions [][3]float32, indices []uint16, color *[4]float64) (*gltf.Document, *gltf.Mesh) {
	var data []byte
	for _, p := range positions {
		for _, f := range p {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
		}
	}
	idxOff := len(data)
	for _, ix := range indices {
		data = binary.LittleEndian.AppendUint16(data, ix)
	}

	posView, idxView := 0, 1
	doc := &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: idxOff},
			{Buffer: 0, ByteOffset: idxOff, ByteLength: len(data) - idxOff},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: &posView, ComponentType: gltf.ComponentFloat, Count: len(positions), Type: gltf.AccessorVec3},
			{BufferView: &idxView, ComponentType: gltf.ComponentUshort, Count: len(indices), Type: gltf.AccessorScalar},
		},
	}

	idxAcc := 1
	prim := &gltf.Primitive{
		Attributes: map[string]int{gltf.POSITION: 0},
		Indices:    &idxAcc,
	}
	if color != nil {
		doc.Materials = []*gltf.Material{{
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: color},
		}}
		matIdx := 0
		prim.Material = &matIdx
	}

	m := &gltf.Mesh{Name: "tri", Primitives: []*gltf.Primitive{prim}}
	doc.Meshes = []*gltf.Mesh{m}
	return doc, m
}

func TestProcessMeshTriangle(t *testing.T) {
	doc, gm := buildTriangleDoc(
		[][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[]uint16{0, 1, 2},
		&[4]float64{1, 0.5, 0, 1},
	)

	mesh := NewMesh("tri")
	if err := NewGLTFLoader().processMesh(doc, gm, mesh); err != nil {
		t.Fatalf("processMesh: %v", err)
	}

	if mesh.VertexCount() != 3 || mesh.FaceCount() != 1 {
		t.Fatalf("got %d vertices / %d faces, want 3 / 1", mesh.VertexCount(), mesh.FaceCount())
	}
	// glTF is y-up, so (0, 1, 0) must land at z-up (0, 0, 1).
	if got := mesh.Vertex(2); got != math3d.V3(0, 0, 1) {
		t.Errorf("converted vertex = %v, want (0, 0, 1)", got)
	}
	if mesh.Face(0) != [3]int{0, 1, 2} {
		t.Errorf("face = %v, want {0, 1, 2}", mesh.Face(0))
	}
	if !mesh.HasColor {
		t.Fatal("material base color not picked up")
	}
	if mesh.BaseColor != [4]float64{1, 0.5, 0, 1} {
		t.Errorf("base color = %v, want the material factor", mesh.BaseColor)
	}
}

func TestProcessMeshNoMaterial(t *testing.T) {
	doc, gm := buildTriangleDoc(
		[][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[]uint16{0, 1, 2},
		nil,
	)

	mesh := NewMesh("plain")
	if err := NewGLTFLoader().processMesh(doc, gm, mesh); err != nil {
		t.Fatalf("processMesh: %v", err)
	}
	if mesh.HasColor {
		t.Error("color reported with no material in the document")
	}
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Error("NewGLTFLoader returned nil")
		return
	}
	if !loader.YUpToZUp {
		t.Error("YUpToZUp should default to true")
	}
}

func TestLoadPackMissingDir(t *testing.T) {
	_, err := LoadPack("/nonexistent/models")
	if err == nil {
		t.Error("Expected error for nonexistent directory")
	}
}

func TestLoadPackEmptyDir(t *testing.T) {
	pack, err := LoadPack(t.TempDir())
	if err != nil {
		t.Fatalf("LoadPack on empty dir: %v", err)
	}
	if pack.Tank != nil || pack.Missile != nil || pack.Saucer != nil ||
		pack.Obstacle != nil || pack.Pyramid != nil {
		t.Error("Empty dir should load no models")
	}
}
