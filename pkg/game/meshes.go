package game

import (
	"math"

	"github.com/jhericks/battle-zone/pkg/math3d"
	"github.com/jhericks/battle-zone/pkg/models"
)

// Built-in wireframe meshes for the airborne enemies. Both sit on
// z=0 in local space, like normalized model-pack meshes, so altitude
// is applied as a shape offset.
var (
	saucerMesh  = buildSaucerMesh(7, 5)
	missileMesh = buildMissileMesh()
)

// buildSaucerMesh makes a six-sided double cone: a hex ring at half
// height with an apex above and below.
func buildSaucerMesh(radius, height float64) *models.Mesh {
	m := models.NewMesh("saucer")

	const sides = 6
	for i := range sides {
		a := float64(i) / sides * 2 * math.Pi
		m.Vertices = append(m.Vertices, math3d.V3(radius*math.Cos(a), radius*math.Sin(a), height/2))
	}
	top := len(m.Vertices)
	m.Vertices = append(m.Vertices, math3d.V3(0, 0, height))
	bottom := len(m.Vertices)
	m.Vertices = append(m.Vertices, math3d.V3(0, 0, 0))

	// Ring runs CCW seen from above, so (i, i+1, apex) winds outward on
	// the upper cone and reversed on the lower.
	for i := range sides {
		j := (i + 1) % sides
		m.Faces = append(m.Faces, [3]int{i, j, top})
		m.Faces = append(m.Faces, [3]int{j, i, bottom})
	}

	m.CalculateBounds()
	return m
}

// buildMissileMesh makes a squat dart pointing along +Y: a tapering
// body with a pyramidal nose.
func buildMissileMesh() *models.Mesh {
	m := models.NewMesh("missile")

	const (
		w    = 3.0 // half width at the tail
		h    = 3.0 // body height
		tail = -6.0
		neck = 4.0 // where the nose taper starts
		tip  = 9.0
	)

	m.Vertices = []math3d.Vec3{
		math3d.V3(-w, tail, 0), // 0: tail bottom left
		math3d.V3(w, tail, 0),  // 1: tail bottom right
		math3d.V3(w, tail, h),  // 2: tail top right
		math3d.V3(-w, tail, h), // 3: tail top left
		math3d.V3(-w, neck, 0), // 4: neck bottom left
		math3d.V3(w, neck, 0),  // 5: neck bottom right
		math3d.V3(w, neck, h),  // 6: neck top right
		math3d.V3(-w, neck, h), // 7: neck top left
		math3d.V3(0, tip, h/2), // 8: nose tip
	}

	quads := [][4]int{
		{0, 1, 2, 3}, // tail cap (-Y)
		{0, 4, 5, 1}, // belly (-Z)
		{3, 2, 6, 7}, // spine (+Z)
		{4, 0, 3, 7}, // left (-X)
		{1, 5, 6, 2}, // right (+X)
	}
	for _, q := range quads {
		m.Faces = append(m.Faces, [3]int{q[0], q[1], q[2]}, [3]int{q[0], q[2], q[3]})
	}

	// Nose: four triangles meeting at the tip.
	m.Faces = append(m.Faces,
		[3]int{5, 4, 8}, // underside
		[3]int{7, 6, 8}, // topside
		[3]int{4, 7, 8}, // left
		[3]int{6, 5, 8}, // right
	)

	m.CalculateBounds()
	return m
}
