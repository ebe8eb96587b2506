package entity

import (
	"fmt"

	"github.com/milk9111/flyto/common"
	"github.com/milk9111/flyto/ecs"
	"github.com/milk9111/flyto/ecs/component"
	"github.com/milk9111/flyto/nav"
	"github.com/milk9111/flyto/prefabs"
)

// NewCamera creates the scene camera aimed at the scene's look-at point,
// with orbit controls pivoting around that point.
func NewCamera(w *ecs.World, spec prefabs.SceneSpec) (ecs.Entity, error) {
	eye := spec.Camera.Position.Vec()
	lookAt := spec.Camera.LookAt.Vec()

	cam := nav.NewCamera(eye, spec.Camera.Fov, float64(common.BaseWidth)/float64(common.BaseHeight), spec.Camera.Near, spec.Camera.Far)
	cam.LookAt(lookAt)

	camera := w.CreateEntity()
	if err := ecs.Add(w, camera, component.CameraComponent, component.Camera{Camera: cam}); err != nil {
		return 0, fmt.Errorf("camera: add camera: %w", err)
	}

	if err := ecs.Add(w, camera, component.CameraHomeComponent, component.CameraHome{
		Eye:    eye,
		LookAt: lookAt,
	}); err != nil {
		return 0, fmt.Errorf("camera: add home: %w", err)
	}

	if err := ecs.Add(w, camera, component.OrbitComponent, component.Orbit{
		Config: spec.OrbitConfig(),
		Target: lookAt,
	}); err != nil {
		return 0, fmt.Errorf("camera: add orbit: %w", err)
	}

	if err := ecs.Add(w, camera, component.PointerComponent, component.Pointer{}); err != nil {
		return 0, fmt.Errorf("camera: add pointer: %w", err)
	}

	if err := ecs.Add(w, camera, component.ViewportComponent, component.Viewport{
		Width:  common.BaseWidth,
		Height: common.BaseHeight,
	}); err != nil {
		return 0, fmt.Errorf("camera: add viewport: %w", err)
	}

	return camera, nil
}
