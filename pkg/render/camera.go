package render

import (
	"math"

	"github.com/jhericks/battle-zone/pkg/math3d"
)

// Pose is the ground position and heading of an entity, read once per
// frame by the renderer. Heading is radians, 0 along +Y, increasing
// counterclockwise viewed from above.
type Pose struct {
	X, Y    float64
	Heading float64
}

// At returns the pose's world position at ground level.
func (p Pose) At() math3d.Vec3 {
	return math3d.V3(p.X, p.Y, 0)
}

// Camera holds the first-person viewer pose. One instance lives in the
// RenderContext and is overwritten every frame from the tracked entity;
// it is never destroyed, only mutated.
type Camera struct {
	// Position in world space. X and Y follow the tracked entity;
	// Z is the fixed eye height above the ground plane.
	Position math3d.Vec3

	// Yaw is the view angle in radians, same convention as Pose.Heading.
	Yaw float64

	// Projection parameters. Invariants: Near > 0, Far > Near.
	FOV  float64 // Vertical field of view in radians
	Near float64 // Near clipping distance
	Far  float64 // Far clipping distance
}

// NewCamera creates a camera with default settings.
func NewCamera() *Camera {
	return &Camera{
		Position: math3d.V3(0, 0, 5),
		Yaw:      0,
		FOV:      math.Pi / 3, // 60 degrees
		Near:     1,
		Far:      600,
	}
}

// Sync overwrites the camera's ground position and yaw from a pose.
// Eye height and projection parameters are configuration and stay put.
// Must run before any projection in the same frame.
func (c *Camera) Sync(pose Pose) {
	c.Position.X = pose.X
	c.Position.Y = pose.Y
	c.Yaw = pose.Heading
}

// Forward returns the ground-plane view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.Heading(c.Yaw)
}

// Right returns the ground-plane direction to the camera's right.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(math.Cos(c.Yaw), math.Sin(c.Yaw), 0)
}
