package models

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"github.com/qmuntal/gltf"

	"github.com/jhericks/battle-zone/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// YUpToZUp converts from glTF's y-up convention to the engine's
	// z-up world. On by default.
	YUpToZUp bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		YUpToZUp: true,
	}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	loader := NewGLTFLoader()
	return loader.Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh. Only triangle
// geometry and the base color factor are read; normals, UVs, and
// textures are ignored since the engine strokes edges.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))

	// Process all meshes in the document
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()

	return mesh, nil
}

// processMesh extracts triangle geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		// Get position accessor
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		// First material's base color factor becomes the mesh stroke
		// color
		if !mesh.HasColor && prim.Material != nil {
			mat := doc.Materials[*prim.Material]
			if mat != nil && mat.PBRMetallicRoughness != nil && mat.PBRMetallicRoughness.BaseColorFactor != nil {
				mesh.BaseColor = *mat.PBRMetallicRoughness.BaseColorFactor
				mesh.HasColor = true
			}
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		// Base vertex index for this primitive
		baseVertex := len(mesh.Vertices)

		for _, p := range positions {
			if l.YUpToZUp {
				// (x, y, z) y-up -> (x, -z, y) z-up. This is a proper
				// rotation, so face winding is preserved.
				p = math3d.V3(p.X, -p.Z, p.Y)
			}
			mesh.Vertices = append(mesh.Vertices, p)
		}

		// Process indices
		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}

			for i := 0; i+2 < len(indices); i += 3 {
				mesh.Faces = append(mesh.Faces, [3]int{
					baseVertex + indices[i],
					baseVertex + indices[i+1],
					baseVertex + indices[i+2],
				})
			}
		} else {
			// No indices, assume sequential triangles
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, [3]int{
					baseVertex + i,
					baseVertex + i + 1,
					baseVertex + i + 2,
				})
			}
		}
	}

	return nil
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}

	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}

	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case []uint8:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint16:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint32:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

// readAccessorData reads raw data from a GLTF accessor.
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	// Get buffer data
	var bufData []byte
	if buffer.URI == "" {
		// Embedded data (GLB)
		bufData = buffer.Data
	} else {
		// External file - need to load relative to document
		return nil, fmt.Errorf("external buffers not supported yet")
	}

	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	// Calculate data bounds
	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	// Read based on component type and accessor type
	switch accessor.Type {
	case gltf.AccessorVec3:
		if stride == 0 {
			stride = 12 // 3 floats * 4 bytes
		}
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorScalar:
		if stride == 0 {
			switch accessor.ComponentType {
			case gltf.ComponentUbyte:
				stride = 1
			case gltf.ComponentUshort:
				stride = 2
			case gltf.ComponentUint:
				stride = 4
			}
		}

		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result := make([]uint8, count)
			for i := range count {
				result[i] = bufData[start+i*stride]
			}
			return result, nil
		case gltf.ComponentUshort:
			result := make([]uint16, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint16(bufData[offset]) | uint16(bufData[offset+1])<<8
			}
			return result, nil
		case gltf.ComponentUint:
			result := make([]uint32, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint32(bufData[offset]) |
					uint32(bufData[offset+1])<<8 |
					uint32(bufData[offset+2])<<16 |
					uint32(bufData[offset+3])<<24
			}
			return result, nil
		}
	}

	return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return float32frombits(bits)
}

// float32frombits converts bits to float32.
func float32frombits(b uint32) float32 {
	return *(*float32)(unsafe.Pointer(&b))
}
