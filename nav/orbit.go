package nav

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type OrbitConfig struct {
	// Damping is the fraction of pending motion applied per update; zero
	// applies input immediately.
	Damping     float64
	RotateSpeed float64 // radians per pixel of drag
	ZoomSpeed   float64 // distance fraction per wheel notch
	MinDistance float64
	MaxDistance float64
}

func DefaultOrbitConfig() OrbitConfig {
	return OrbitConfig{
		Damping:     0.05,
		RotateSpeed: 0.005,
		ZoomSpeed:   0.1,
		MinDistance: 0.5,
		MaxDistance: 200,
	}
}

const (
	maxPitch     = math.Pi/2 - 0.01
	settleMotion = 1e-6
)

// OrbitController keeps the camera on a sphere around Target.
type OrbitController struct {
	Target   mgl64.Vec3
	Distance float64
	Yaw      float64 // around +Y, zero looks down -Z
	Pitch    float64

	cfg          OrbitConfig
	pendingYaw   float64
	pendingPitch float64
	pendingZoom  float64
}

func NewOrbitController(cfg OrbitConfig) *OrbitController {
	if cfg.MinDistance <= 0 {
		cfg.MinDistance = 0.01
	}
	if cfg.MaxDistance < cfg.MinDistance {
		cfg.MaxDistance = math.Inf(1)
	}
	if cfg.Damping < 0 || cfg.Damping > 1 {
		cfg.Damping = 0
	}
	return &OrbitController{cfg: cfg, Distance: cfg.MinDistance}
}

// Rotate queues a drag of dx, dy pixels.
func (o *OrbitController) Rotate(dx, dy float64) {
	o.pendingYaw -= dx * o.cfg.RotateSpeed
	o.pendingPitch += dy * o.cfg.RotateSpeed
}

// Zoom queues wheel notches; positive moves closer.
func (o *OrbitController) Zoom(notches float64) {
	o.pendingZoom += notches
}

// SyncFromCamera re-derives the spherical coordinates so that Position
// equals the camera eye and the orbit pivots around target.
func (o *OrbitController) SyncFromCamera(cam Pose, target mgl64.Vec3) {
	o.Target = target
	offset := cam.Position().Sub(target)
	d := offset.Len()
	if d < epsilon {
		o.Distance = o.cfg.MinDistance
		o.Yaw, o.Pitch = 0, 0
	} else {
		o.Distance = d
		o.Yaw = math.Atan2(offset.X(), offset.Z())
		o.Pitch = math.Asin(mgl64.Clamp(offset.Y()/d, -1, 1))
	}
	o.pendingYaw, o.pendingPitch, o.pendingZoom = 0, 0, 0
}

func (o *OrbitController) Position() mgl64.Vec3 {
	cp := math.Cos(o.Pitch)
	return o.Target.Add(mgl64.Vec3{
		o.Distance * cp * math.Sin(o.Yaw),
		o.Distance * math.Sin(o.Pitch),
		o.Distance * cp * math.Cos(o.Yaw),
	})
}

// Moving reports whether queued input is still being applied.
func (o *OrbitController) Moving() bool {
	return math.Abs(o.pendingYaw) > settleMotion ||
		math.Abs(o.pendingPitch) > settleMotion ||
		math.Abs(o.pendingZoom) > settleMotion
}

// Update applies a share of the queued motion and writes the pose to cam.
func (o *OrbitController) Update(cam Pose) {
	share := o.cfg.Damping
	if share == 0 {
		share = 1
	}

	yaw := o.pendingYaw * share
	pitch := o.pendingPitch * share
	zoom := o.pendingZoom * share
	o.pendingYaw -= yaw
	o.pendingPitch -= pitch
	o.pendingZoom -= zoom
	if !o.Moving() {
		o.pendingYaw, o.pendingPitch, o.pendingZoom = 0, 0, 0
	}

	o.Yaw += yaw
	o.Pitch = mgl64.Clamp(o.Pitch+pitch, -maxPitch, maxPitch)
	if zoom != 0 {
		o.Distance *= math.Pow(1-o.cfg.ZoomSpeed, zoom)
	}
	o.Distance = mgl64.Clamp(o.Distance, o.cfg.MinDistance, o.cfg.MaxDistance)

	cam.SetPosition(o.Position())
	cam.LookAt(o.Target)
}
