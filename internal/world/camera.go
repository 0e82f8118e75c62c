package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	minOrbitDistance = 1
	maxOrbitDistance = 500
	// pitchEpsilon keeps the orbit away from the poles where Up and the view direction align.
	pitchEpsilon = 0.01
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fovy     float32 // vertical field of view in degrees
	Near     float32
	Far      float32
	Aspect   float32
}

// NewPerspective returns a camera at the origin looking down -Z.
func NewPerspective(fovy, aspect, near, far float32) *Camera {
	return &Camera{
		Target: mgl32.Vec3{0, 0, -1},
		Up:     mgl32.Vec3{0, 1, 0},
		Fovy:   fovy,
		Near:   near,
		Far:    far,
		Aspect: aspect,
	}
}

// SetAspect updates the aspect ratio from a viewport size. Zero sizes are ignored.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the camera-to-clip matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), c.Aspect, c.Near, c.Far)
}

// Distance returns the distance from Position to Target.
func (c *Camera) Distance() float32 {
	return c.Position.Sub(c.Target).Len()
}

// Orbit rotates Position around Target by dYaw (around Up) and dPitch
// (towards the poles), both in radians. Distance is preserved.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	offset := c.Position.Sub(c.Target)
	r := offset.Len()
	if r == 0 {
		return
	}
	theta := math32.Atan2(offset.X(), offset.Z())
	phi := math32.Acos(mgl32.Clamp(offset.Y()/r, -1, 1))

	theta -= dYaw
	phi = mgl32.Clamp(phi-dPitch, pitchEpsilon, math32.Pi-pitchEpsilon)

	c.Position = c.Target.Add(sphericalToVec(r, phi, theta))
}

// Zoom scales the orbit distance by factor, clamped to a sane range.
func (c *Camera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	offset := c.Position.Sub(c.Target)
	r := offset.Len()
	if r == 0 {
		return
	}
	nr := mgl32.Clamp(r*factor, minOrbitDistance, maxOrbitDistance)
	c.Position = c.Target.Add(offset.Mul(nr / r))
}

func sphericalToVec(r, phi, theta float32) mgl32.Vec3 {
	sinPhi := math32.Sin(phi)
	return mgl32.Vec3{
		r * sinPhi * math32.Sin(theta),
		r * math32.Cos(phi),
		r * sinPhi * math32.Cos(theta),
	}
}
