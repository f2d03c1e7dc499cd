// Package render implements the battle-zone drawing pipeline: a pose
// camera, a trigonometric perspective projector, per-frame procedural
// geometry for a closed set of shapes, analytic back-face culling, and a
// painter's-algorithm compositor that fills and strokes faces far to
// near into a software framebuffer. There is no depth buffer and no
// retained scene; everything is rebuilt each frame from entity poses.
package render

import (
	"fmt"
	"math"
)

// RenderContext owns all state the pipeline shares across a frame: the
// single camera, the target framebuffer, derived projection constants,
// and the reusable per-frame geometry arenas. One instance per output
// surface, written only by the frame-driving goroutine.
type RenderContext struct {
	camera *Camera
	fb     *Framebuffer

	// Background is the opaque fill color. Filling each face with it
	// before stroking is the occlusion mechanism, so it must match the
	// color the framebuffer is cleared to.
	Background Color

	// GridSpacing and GridRadius shape the ground lattice (§DrawGroundGrid).
	GridSpacing float64
	GridRadius  float64

	// Derived projection constants, refreshed when camera or viewport
	// parameters change.
	halfW, halfH   float64
	focal          float64
	fovCached      float64
	sinYaw, cosYaw float64
	yawCached      float64
	yawFresh       bool

	// Per-frame arenas, reset (not reallocated) every DrawScene call.
	geom    Geometry
	visible []visibleFace
}

// NewRenderContext creates a context drawing through the given camera
// into fb. A missing or zero-sized framebuffer, or a camera violating
// its clip-plane invariants, is a configuration error that should abort
// startup; nothing here is checked again per draw call.
func NewRenderContext(camera *Camera, fb *Framebuffer) (*RenderContext, error) {
	if fb == nil || fb.Width <= 0 || fb.Height <= 0 {
		return nil, fmt.Errorf("render context: missing or zero-sized viewport")
	}
	if camera == nil {
		return nil, fmt.Errorf("render context: nil camera")
	}
	if camera.Near <= 0 || camera.Far <= camera.Near {
		return nil, fmt.Errorf("render context: bad clip planes near=%v far=%v", camera.Near, camera.Far)
	}

	c := &RenderContext{
		camera:      camera,
		fb:          fb,
		Background:  ColorBlack,
		GridSpacing: 20,
		GridRadius:  160,
	}
	c.setViewport(fb)
	return c, nil
}

// Camera returns the context's camera for configuration and effects
// (eye height, FOV). Per-frame pose updates should go through SyncCamera.
func (c *RenderContext) Camera() *Camera {
	return c.camera
}

// Framebuffer returns the current target surface.
func (c *RenderContext) Framebuffer() *Framebuffer {
	return c.fb
}

// SyncCamera copies the tracked entity's pose into the camera. Call once
// per frame before projecting anything.
func (c *RenderContext) SyncCamera(pose Pose) {
	c.camera.Sync(pose)
	c.refresh()
}

// Resize retargets the context at a new framebuffer, re-deriving the
// focal length. The same viewport validity rule as construction applies.
func (c *RenderContext) Resize(fb *Framebuffer) error {
	if fb == nil || fb.Width <= 0 || fb.Height <= 0 {
		return fmt.Errorf("render context: resize to zero-sized viewport")
	}
	c.setViewport(fb)
	return nil
}

func (c *RenderContext) setViewport(fb *Framebuffer) {
	c.fb = fb
	c.halfW = float64(fb.Width) / 2
	c.halfH = float64(fb.Height) / 2
	c.fovCached = 0 // force focal recompute
	c.refresh()
}

// refresh re-derives the cached trig whenever the camera's yaw or FOV
// moved since the last projection.
func (c *RenderContext) refresh() {
	if !c.yawFresh || c.camera.Yaw != c.yawCached {
		c.yawCached = c.camera.Yaw
		c.sinYaw, c.cosYaw = math.Sincos(c.camera.Yaw)
		c.yawFresh = true
	}
	if c.camera.FOV != c.fovCached {
		c.fovCached = c.camera.FOV
		c.focal = c.halfW / math.Tan(c.camera.FOV/2)
	}
}

// FocalLength returns the pixel focal length derived from the viewport
// width and the camera FOV.
func (c *RenderContext) FocalLength() float64 {
	c.refresh()
	return c.focal
}
