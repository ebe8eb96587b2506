package nav

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

var (
	worldUp        = mgl64.Vec3{0, 1, 0}
	defaultForward = mgl64.Vec3{0, 0, -1}
)

// Pose is the part of a camera the flight and orbit controllers drive.
type Pose interface {
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	LookAt(target mgl64.Vec3)
}

// RayCaster builds a world-space ray through a normalized device coordinate.
type RayCaster interface {
	RayThrough(ndcX, ndcY float64) Ray
}

// Camera is a perspective camera. Orientation is kept as a unit forward
// vector that LookAt recomputes.
type Camera struct {
	Eye     mgl64.Vec3
	Forward mgl64.Vec3
	Up      mgl64.Vec3
	FovY    float64 // degrees
	Aspect  float64
	Near    float64
	Far     float64
}

func NewCamera(eye mgl64.Vec3, fovY, aspect, near, far float64) Camera {
	return Camera{
		Eye:     eye,
		Forward: defaultForward,
		Up:      worldUp,
		FovY:    fovY,
		Aspect:  aspect,
		Near:    near,
		Far:     far,
	}
}

func (c *Camera) Position() mgl64.Vec3 {
	return c.Eye
}

func (c *Camera) SetPosition(p mgl64.Vec3) {
	c.Eye = p
}

// LookAt aims the camera at target. Aiming at the eye itself keeps the
// current orientation.
func (c *Camera) LookAt(target mgl64.Vec3) {
	dir := target.Sub(c.Eye)
	if dir.Len() < epsilon {
		return
	}
	c.Forward = dir.Normalize()
}

// Aim returns the unit view direction.
func (c *Camera) Aim() mgl64.Vec3 {
	if c.Forward.Len() < epsilon {
		return defaultForward
	}
	return c.Forward.Normalize()
}

func (c *Camera) up() mgl64.Vec3 {
	up := c.Up
	if up.Len() < epsilon {
		up = worldUp
	}
	up = up.Normalize()
	if math.Abs(up.Dot(c.Aim())) > 0.999 {
		// looking straight along up: any perpendicular works
		up = mgl64.Vec3{0, 0, -1}
		if math.Abs(up.Dot(c.Aim())) > 0.999 {
			up = mgl64.Vec3{1, 0, 0}
		}
	}
	return up
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Eye.Add(c.Aim()), c.up())
}

func (c *Camera) Projection() mgl64.Mat4 {
	fov := c.FovY
	if fov <= 0 || fov >= 180 {
		fov = 60
	}
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	near := c.Near
	if near <= 0 {
		near = 0.1
	}
	far := c.Far
	if far <= near {
		far = near * 1000
	}
	return mgl64.Perspective(mgl64.DegToRad(fov), aspect, near, far)
}

func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// RayThrough returns the ray starting at the eye and passing through the
// near-plane point under (ndcX, ndcY). Coordinates outside [-1, 1] are
// valid and yield off-screen rays.
func (c *Camera) RayThrough(ndcX, ndcY float64) Ray {
	inv := c.ViewProjection().Inv()
	near := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, -1, 1})
	if math.Abs(near.W()) < epsilon {
		return Ray{Origin: c.Eye, Direction: c.Aim()}
	}
	point := near.Vec3().Mul(1 / near.W())
	dir := point.Sub(c.Eye)
	if dir.Len() < epsilon {
		return Ray{Origin: c.Eye, Direction: c.Aim()}
	}
	return Ray{Origin: c.Eye, Direction: dir.Normalize()}
}

// Project maps a world point to pixel coordinates in a width x height
// viewport. depth is the view-space distance along the aim; ok is false
// for points on or behind the near plane.
func (c *Camera) Project(p mgl64.Vec3, width, height float64) (x, y, depth float64, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	near := c.Near
	if near <= 0 {
		near = 0.1
	}
	if clip.W() < near {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) / 2 * width
	y = (1 - ndc.Y()) / 2 * height
	return x, y, clip.W(), true
}
