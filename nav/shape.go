package nav

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3 // unit length
}

func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Shape is an intersectable primitive in the local space of its node.
// IntersectRay reports the distance along r to the nearest hit when the
// shape sits at the world position origin.
type Shape interface {
	IntersectRay(r Ray, origin mgl64.Vec3) (float64, bool)
}

// Quad is a flat rectangle. Right and Up span the rectangle and default to
// the X and Y axes, so an unrotated quad faces +Z. Only the front face is
// hit unless DoubleSided is set.
type Quad struct {
	Center      mgl64.Vec3
	Width       float64
	Height      float64
	Right       mgl64.Vec3
	Up          mgl64.Vec3
	DoubleSided bool
}

func (q Quad) axes() (right, up, normal mgl64.Vec3) {
	right = q.Right
	if right.Len() < epsilon {
		right = mgl64.Vec3{1, 0, 0}
	}
	up = q.Up
	if up.Len() < epsilon {
		up = mgl64.Vec3{0, 1, 0}
	}
	right = right.Normalize()
	up = up.Normalize()
	return right, up, right.Cross(up).Normalize()
}

// Corners returns the world-space corners counter-clockwise from bottom left.
func (q Quad) Corners(origin mgl64.Vec3) [4]mgl64.Vec3 {
	right, up, _ := q.axes()
	c := origin.Add(q.Center)
	hr := right.Mul(q.Width / 2)
	hu := up.Mul(q.Height / 2)
	return [4]mgl64.Vec3{
		c.Sub(hr).Sub(hu),
		c.Add(hr).Sub(hu),
		c.Add(hr).Add(hu),
		c.Sub(hr).Add(hu),
	}
}

// FacesPoint reports whether p sees the quad's front face, i.e. whether the
// quad is drawn and pickable from p.
func (q Quad) FacesPoint(origin, p mgl64.Vec3) bool {
	if q.DoubleSided {
		return true
	}
	_, _, normal := q.axes()
	return p.Sub(origin.Add(q.Center)).Dot(normal) > 0
}

func (q Quad) IntersectRay(r Ray, origin mgl64.Vec3) (float64, bool) {
	if q.Width <= 0 || q.Height <= 0 {
		return 0, false
	}
	right, up, normal := q.axes()
	denom := r.Direction.Dot(normal)
	if math.Abs(denom) < epsilon {
		return 0, false
	}
	if denom > 0 && !q.DoubleSided {
		return 0, false
	}

	center := origin.Add(q.Center)
	t := center.Sub(r.Origin).Dot(normal) / denom
	if !(t >= 0) {
		return 0, false
	}

	local := r.At(t).Sub(center)
	if !(math.Abs(local.Dot(right)) <= q.Width/2) || !(math.Abs(local.Dot(up)) <= q.Height/2) {
		return 0, false
	}
	return t, true
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func (b Box) IntersectRay(r Ray, origin mgl64.Vec3) (float64, bool) {
	lo := origin.Add(b.Min)
	hi := origin.Add(b.Max)

	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		o := r.Origin[axis]
		d := r.Direction[axis]
		if math.Abs(d) < epsilon {
			if o < lo[axis] || o > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - o) / d
		t2 := (hi[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}

	if !(tmax >= tmin) || tmax < 0 {
		return 0, false
	}
	// origin inside the box: report the exit point
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
