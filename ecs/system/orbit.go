package system

import (
	"github.com/milk9111/flyto/ecs"
	"github.com/milk9111/flyto/ecs/component"
	"github.com/milk9111/flyto/nav"
)

// OrbitSystem drives the camera from pointer drags and the wheel. It stays
// out of the way while a flight owns the camera; once the flight is Done it
// re-pivots around the flight's look-at point and removes the Flight.
type OrbitSystem struct {
	ctrl *nav.OrbitController
}

func NewOrbitSystem() *OrbitSystem {
	return &OrbitSystem{}
}

func (o *OrbitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	camera, cam, ok := ecs.First(w, component.CameraComponent)
	if !ok {
		return
	}
	orbit, ok := ecs.Get(w, camera, component.OrbitComponent)
	if !ok {
		return
	}

	if o.ctrl == nil {
		o.ctrl = nav.NewOrbitController(orbit.Config)
		o.ctrl.SyncFromCamera(cam, orbit.Target)
	}

	if flight, ok := ecs.Get(w, camera, component.FlightComponent); ok {
		if !flight.Done {
			return
		}
		orbit.Target = flight.LookAt
		o.ctrl.SyncFromCamera(cam, flight.LookAt)
		ecs.Remove(w, camera, component.FlightComponent)
	}

	if pointer, ok := ecs.Get(w, camera, component.PointerComponent); ok {
		if pointer.Held && !pointer.Pressed && !pointer.Captured {
			o.ctrl.Rotate(pointer.DeltaX, pointer.DeltaY)
		}
		if pointer.Wheel != 0 {
			o.ctrl.Zoom(pointer.Wheel)
		}
	}

	o.ctrl.Update(cam)
}

// Controller exposes the orbit state, nil until the first update.
func (o *OrbitSystem) Controller() *nav.OrbitController {
	return o.ctrl
}
