package nav

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraRayThrough(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{0, 1.5, 6}, 60, 16.0/9.0, 0.1, 2000)
	cam.LookAt(mgl64.Vec3{0, 1.5, 0})

	t.Run("center_follows_aim", func(t *testing.T) {
		r := cam.RayThrough(0, 0)
		assert.Equal(t, cam.Eye, r.Origin)
		assert.Less(t, r.Direction.Sub(mgl64.Vec3{0, 0, -1}).Len(), 1e-9, "%v", r.Direction)
	})

	t.Run("top_edge_matches_fov", func(t *testing.T) {
		r := cam.RayThrough(0, 1)
		angle := math.Acos(r.Direction.Dot(cam.Aim()))
		assert.InDelta(t, mgl64.DegToRad(30), angle, 1e-6)
		assert.Greater(t, r.Direction.Y(), 0.0)
	})

	t.Run("right_is_positive_x", func(t *testing.T) {
		r := cam.RayThrough(1, 0)
		assert.Greater(t, r.Direction.X(), 0.0)
	})
}

func TestCameraLookAtSamePointKeepsAim(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{1, 2, 3}, 60, 1, 0.1, 100)
	cam.LookAt(mgl64.Vec3{1, 2, 0})
	before := cam.Aim()
	cam.LookAt(cam.Eye)
	assert.Equal(t, before, cam.Aim())
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{0, 0, 5}, 60, 2, 0.1, 100)
	cam.LookAt(mgl64.Vec3{})

	x, y, depth, ok := cam.Project(mgl64.Vec3{}, 800, 400)
	require.True(t, ok)
	assert.InDelta(t, 400, x, 1e-6)
	assert.InDelta(t, 200, y, 1e-6)
	assert.InDelta(t, 5, depth, 1e-6)

	_, _, _, ok = cam.Project(mgl64.Vec3{0, 0, 10}, 800, 400)
	assert.False(t, ok, "behind the camera")
}

func TestCameraLookStraightDown(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{0, 10, 0}, 60, 1, 0.1, 100)
	cam.LookAt(mgl64.Vec3{})
	v := cam.View()
	for i := 0; i < 16; i++ {
		require.False(t, math.IsNaN(v[i]))
	}
	r := cam.RayThrough(0, 0)
	assert.Less(t, r.Direction.Sub(mgl64.Vec3{0, -1, 0}).Len(), 1e-9)
}

func TestNormalizePointer(t *testing.T) {
	cases := []struct {
		name         string
		x, y, w, h   float64
		wantX, wantY float64
		ok           bool
	}{
		{"top_left", 0, 0, 800, 600, -1, 1, true},
		{"center", 400, 300, 800, 600, 0, 0, true},
		{"bottom_right", 800, 600, 800, 600, 1, -1, true},
		{"outside", 1200, -300, 800, 600, 2, 2, true},
		{"zero_width", 10, 10, 0, 600, 0, 0, false},
		{"zero_height", 10, 10, 800, 0, 0, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y, ok := NormalizePointer(c.x, c.y, c.w, c.h)
			assert.Equal(t, c.ok, ok)
			assert.InDelta(t, c.wantX, x, 1e-12)
			assert.InDelta(t, c.wantY, y, 1e-12)
		})
	}
}

func TestBoxIntersect(t *testing.T) {
	b := Box{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	d, ok := b.IntersectRay(Ray{Origin: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, -1}}, mgl64.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 4, d, 1e-12)

	d, ok = b.IntersectRay(Ray{Origin: mgl64.Vec3{}, Direction: mgl64.Vec3{0, 1, 0}}, mgl64.Vec3{})
	require.True(t, ok, "inside reports exit")
	assert.InDelta(t, 1, d, 1e-12)

	_, ok = b.IntersectRay(Ray{Origin: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, 1}}, mgl64.Vec3{})
	assert.False(t, ok, "box behind ray")
}
