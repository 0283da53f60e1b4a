// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// farPadding keeps objects at z slightly above zero inside the frustum.
const farPadding = 10

// ScreenCamera looks straight down -Z at the screen rectangle on the z=0
// plane, with (0,0) at the bottom-left corner. The eye distance is derived
// from the screen width, so the whole rectangle stays in view.
type ScreenCamera struct {
	ScreenWidth  float32
	ScreenHeight float32
	FOV          float32 // vertical field of view in radians
	Near         float32
}

// NewScreenCamera creates a camera for a screen of the given size.
func NewScreenCamera(width, height int, fovDegrees, near float32) *ScreenCamera {
	return &ScreenCamera{
		ScreenWidth:  float32(width),
		ScreenHeight: float32(height),
		FOV:          mgl32.DegToRad(fovDegrees),
		Near:         near,
	}
}

// Distance returns the eye distance from the z=0 plane.
func (c *ScreenCamera) Distance() float32 {
	return (c.ScreenWidth / 2) / float32(gomath.Tan(float64(c.FOV)/2))
}

// Position returns the camera position in world space.
func (c *ScreenCamera) Position() mgl32.Vec3 {
	return mgl32.Vec3{c.ScreenWidth / 2, c.ScreenHeight / 2, c.Distance()}
}

// ViewMatrix returns the view matrix for this camera.
func (c *ScreenCamera) ViewMatrix() mgl32.Mat4 {
	eye := c.Position()
	front := mgl32.Vec3{0, 0, -1}
	up := mgl32.Vec3{0, 1, 0}
	return mgl32.LookAtV(eye, eye.Add(front), up)
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *ScreenCamera) ProjectionMatrix() mgl32.Mat4 {
	aspect := c.ScreenWidth / c.ScreenHeight
	return mgl32.Perspective(c.FOV, aspect, c.Near, c.Distance()+farPadding)
}

// Resize updates the screen size after a window resize.
func (c *ScreenCamera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.ScreenWidth = float32(width)
	c.ScreenHeight = float32(height)
}
