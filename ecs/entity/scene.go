package entity

import (
	"fmt"

	"github.com/milk9111/flyto/ecs"
	"github.com/milk9111/flyto/prefabs"
)

// Scene lists the entities BuildScene created.
type Scene struct {
	Name   string
	Camera ecs.Entity
	Panels []ecs.Entity
}

// BuildScene populates w with the camera and every panel of spec, panels in
// file order.
func BuildScene(w *ecs.World, spec prefabs.SceneSpec) (Scene, error) {
	scene := Scene{Name: spec.Name}

	camera, err := NewCamera(w, spec)
	if err != nil {
		return Scene{}, fmt.Errorf("scene %s: %w", spec.Name, err)
	}
	scene.Camera = camera

	for i, p := range spec.Panels {
		panel, err := NewPanel(w, spec.Name, i, p)
		if err != nil {
			return Scene{}, fmt.Errorf("scene %s: %w", spec.Name, err)
		}
		scene.Panels = append(scene.Panels, panel)
	}
	return scene, nil
}
