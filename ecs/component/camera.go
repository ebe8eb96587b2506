package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/flyto/nav"
)

// Camera is the scene viewpoint. The embedded nav.Camera makes *Camera a
// nav.Pose and nav.RayCaster.
type Camera struct {
	nav.Camera
}

var CameraComponent = NewComponent[Camera]()

// CameraHome is the pose the camera returns to on a reset.
type CameraHome struct {
	Eye    mgl64.Vec3
	LookAt mgl64.Vec3
}

var CameraHomeComponent = NewComponent[CameraHome]()

// Orbit configures the orbit controls attached to a camera.
type Orbit struct {
	Config nav.OrbitConfig
	// Target is the initial pivot; after a flight the pivot moves to the
	// flight's look-at point.
	Target mgl64.Vec3
}

var OrbitComponent = NewComponent[Orbit]()

// Viewport is the drawable size in pixels, refreshed on every layout.
type Viewport struct {
	Width  float64
	Height float64
}

var ViewportComponent = NewComponent[Viewport]()
