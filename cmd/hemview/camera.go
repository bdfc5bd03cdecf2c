package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// camera orbits the origin: the model is turned by yaw and pitch and
// viewed from Distance along +Z.
type camera struct {
	eye        mgl64.Vec3
	view       mgl64.Mat4
	projection mgl64.Mat4
	yaw, pitch float64
	width      float64
	height     float64
}

func newCamera(distance, fov float64, width, height int) *camera {
	eye := mgl64.Vec3{0, 0, distance}
	return &camera{
		eye:        eye,
		view:       mgl64.LookAtV(eye, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}),
		projection: mgl64.Perspective(mgl64.DegToRad(fov), float64(width)/float64(height), 0.1, 100*distance),
		width:      float64(width),
		height:     float64(height),
	}
}

func (c *camera) AddAngle(pitch, yaw float64) {
	c.yaw += yaw
	c.pitch = mgl64.Clamp(c.pitch+pitch, -math.Pi/2, math.Pi/2)
}

// model returns the rotation applied to the mesh.
func (c *camera) model() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(c.pitch).Mul4(mgl64.HomogRotate3DY(c.yaw))
}

// project maps a world point to screen pixels. ok is false behind the eye.
func (c *camera) project(p mgl64.Vec3) (x, y float32, ok bool) {
	clip := c.projection.Mul4(c.view).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = float32((ndc.X() + 1) / 2 * c.width)
	y = float32((1 - ndc.Y()) / 2 * c.height)
	return x, y, true
}
