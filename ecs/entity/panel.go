package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/flyto/ecs"
	"github.com/milk9111/flyto/ecs/component"
	"github.com/milk9111/flyto/prefabs"
)

// labelOffset lifts the label quad off the surface so it always wins the
// depth sort and the pick.
const labelOffset = 0.01

var labelColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// NewPanel creates a panel group: the panel entity itself carries no quad,
// its surface and label are children.
func NewPanel(w *ecs.World, scene string, order int, spec prefabs.PanelSpec) (ecs.Entity, error) {
	panel := w.CreateEntity()
	if err := ecs.Add(w, panel, component.TransformComponent, component.Transform{
		Position: spec.Position.Vec(),
	}); err != nil {
		return 0, fmt.Errorf("panel %s: add transform: %w", spec.Name, err)
	}

	if err := ecs.Add(w, panel, component.PanelComponent, component.Panel{
		ID:    PanelID(scene, spec.Name),
		Name:  spec.Name,
		Label: spec.Label,
		Order: order,
	}); err != nil {
		return 0, fmt.Errorf("panel %s: add panel: %w", spec.Name, err)
	}

	surface, err := newPanelQuad(w, panel, mgl64.Vec3{}, component.Quad{
		Width:  spec.Width,
		Height: spec.Height,
		Color:  spec.Color.RGBA,
	})
	if err != nil {
		return 0, fmt.Errorf("panel %s: surface: %w", spec.Name, err)
	}
	children := []uint64{uint64(surface)}

	if spec.Label != "" {
		label, err := newPanelQuad(w, panel, mgl64.Vec3{0, 0, labelOffset}, component.Quad{
			Width:  spec.Width * 0.8,
			Height: spec.Height * 0.25,
			Color:  labelColor,
			Label:  spec.Label,
		})
		if err != nil {
			return 0, fmt.Errorf("panel %s: label: %w", spec.Name, err)
		}
		children = append(children, uint64(label))
	}

	if err := ecs.Add(w, panel, component.ChildrenComponent, component.Children{Entities: children}); err != nil {
		return 0, fmt.Errorf("panel %s: add children: %w", spec.Name, err)
	}
	return panel, nil
}

func newPanelQuad(w *ecs.World, parent ecs.Entity, offset mgl64.Vec3, quad component.Quad) (ecs.Entity, error) {
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.ParentComponent, component.Parent{Entity: uint64(parent)}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent, component.Transform{Position: offset}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.QuadComponent, quad); err != nil {
		return 0, err
	}
	return e, nil
}
