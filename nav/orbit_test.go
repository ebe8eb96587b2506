package nav

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestOrbitSyncKeepsPose(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{2.5, 1.2, 0}, 60, 1, 0.1, 100)
	target := mgl64.Vec3{2.5, 1.2, -3}
	cam.LookAt(target)

	o := NewOrbitController(DefaultOrbitConfig())
	o.SyncFromCamera(&cam, target)
	assert.Less(t, o.Position().Sub(cam.Eye).Len(), 1e-9, "%v vs %v", o.Position(), cam.Eye)

	before := cam.Eye
	o.Update(&cam)
	assert.Less(t, cam.Eye.Sub(before).Len(), 1e-9, "no input, no motion")
	assert.False(t, o.Moving())
}

func TestOrbitRotateDamped(t *testing.T) {
	cfg := DefaultOrbitConfig()
	cam := NewCamera(mgl64.Vec3{0, 0, 5}, 60, 1, 0.1, 100)
	o := NewOrbitController(cfg)
	o.SyncFromCamera(&cam, mgl64.Vec3{})

	o.Rotate(-100, 0) // drag left: camera swings toward +X
	o.Update(&cam)
	first := cam.Eye.X()
	assert.Greater(t, first, 0.0)
	assert.True(t, o.Moving(), "damping leaves motion queued")

	for i := 0; i < 500; i++ {
		o.Update(&cam)
	}
	assert.False(t, o.Moving())
	assert.Greater(t, cam.Eye.X(), first)
	assert.InDelta(t, 5, cam.Eye.Len(), 1e-9, "distance kept while rotating")
	assert.InDelta(t, 0.5, o.Yaw, 1e-3)
}

func TestOrbitZoomClamped(t *testing.T) {
	cfg := DefaultOrbitConfig()
	cfg.Damping = 0
	cfg.MinDistance = 2
	cam := NewCamera(mgl64.Vec3{0, 0, 5}, 60, 1, 0.1, 100)
	o := NewOrbitController(cfg)
	o.SyncFromCamera(&cam, mgl64.Vec3{})

	o.Zoom(1)
	o.Update(&cam)
	assert.InDelta(t, 4.5, o.Distance, 1e-9)

	o.Zoom(100)
	o.Update(&cam)
	assert.Equal(t, 2.0, o.Distance)
	assert.InDelta(t, 2, cam.Eye.Len(), 1e-9)
}
