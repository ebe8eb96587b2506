package system

import (
	"github.com/google/uuid"

	"github.com/milk9111/flyto/ecs"
	"github.com/milk9111/flyto/ecs/component"
)

// CarrySelection moves the selection from a world being replaced into its
// successor, matching panels by ID. A flight still running in prev is
// re-requested on next's camera so it finishes from wherever the camera
// was carried to.
func CarrySelection(prev, next *ecs.World) {
	if prev == nil || next == nil {
		return
	}

	if id, ok := selectedPanelID(prev); ok {
		if e, ok := panelByID(next, id); ok {
			_ = ecs.Add(next, e, component.SelectedTagComponent, component.SelectedTag{})
		}
	}

	camera, _, ok := ecs.First(prev, component.CameraComponent)
	if !ok {
		return
	}
	flight, ok := ecs.Get(prev, camera, component.FlightComponent)
	if !ok || flight.Done {
		return
	}
	nextCamera, _, ok := ecs.First(next, component.CameraComponent)
	if !ok {
		return
	}

	panel, ok := ecs.Get(prev, ecs.Entity(flight.Target), component.PanelComponent)
	if !ok {
		_ = ecs.Add(next, nextCamera, component.ResetViewRequestComponent, component.ResetViewRequest{})
		return
	}
	if e, ok := panelByID(next, panel.ID); ok {
		_ = ecs.Add(next, nextCamera, component.SelectRequestComponent, component.SelectRequest{Target: uint64(e)})
	}
}

func selectedPanelID(w *ecs.World) (uuid.UUID, bool) {
	id := uuid.Nil
	ecs.ForEach2(w, component.PanelComponent, component.SelectedTagComponent, func(_ ecs.Entity, p *component.Panel, _ *component.SelectedTag) {
		id = p.ID
	})
	return id, id != uuid.Nil
}

func panelByID(w *ecs.World, id uuid.UUID) (ecs.Entity, bool) {
	var found ecs.Entity
	ok := false
	ecs.ForEach(w, component.PanelComponent, func(e ecs.Entity, p *component.Panel) {
		if !ok && p.ID == id {
			found, ok = e, true
		}
	})
	return found, ok
}
