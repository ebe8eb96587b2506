package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/flyto/ecs"
	"github.com/milk9111/flyto/ecs/component"
	"github.com/milk9111/flyto/nav"
)

// FlightSystem owns camera flights. A SelectRequest starts a flight to a
// panel, a ResetViewRequest starts one back to CameraHome, and each tick
// advances the active flight by one step. A new request replaces the
// running flight from wherever the camera is.
type FlightSystem struct {
	ctrl   *nav.FlightController
	logger *zap.Logger
}

func NewFlightSystem(cfg nav.FlightConfig, logger *zap.Logger) (*FlightSystem, error) {
	ctrl, err := nav.NewFlightController(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlightSystem{ctrl: ctrl, logger: logger}, nil
}

func (f *FlightSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	camera, cam, ok := ecs.First(w, component.CameraComponent)
	if !ok {
		return
	}

	if _, ok := ecs.Get(w, camera, component.ResetViewRequestComponent); ok {
		ecs.Remove(w, camera, component.ResetViewRequestComponent)
		f.flyHome(w, camera, cam)
	}

	if req, ok := ecs.Get(w, camera, component.SelectRequestComponent); ok {
		target := ecs.Entity(req.Target)
		ecs.Remove(w, camera, component.SelectRequestComponent)
		f.flyToPanel(w, camera, cam, target)
	}

	st, ok := f.ctrl.State()
	if !ok {
		return
	}
	flight, hasFlight := ecs.Get(w, camera, component.FlightComponent)

	running := f.ctrl.Advance(cam)
	lookAt := st.Target.AnchorPosition()
	if hasFlight {
		flight.LookAt = lookAt
		flight.Progress = 1
		if next, ok := f.ctrl.State(); ok {
			flight.Progress = next.T
		}
	}
	if running {
		return
	}

	var target ecs.Entity
	if hasFlight {
		flight.Done = true
		target = ecs.Entity(flight.Target)
	}
	f.logger.Debug("flight finished",
		zap.Stringer("target", target),
		zap.Float64s("eye", cam.Eye[:]),
	)
	w.Events().Push(ecs.Event{
		Type: ecs.EventFlightFinished,
		Data: ecs.FlightEvent{Camera: camera, Target: target},
	})
}

func (f *FlightSystem) flyToPanel(w *ecs.World, camera ecs.Entity, cam *component.Camera, target ecs.Entity) {
	panel, ok := ecs.Get(w, target, component.PanelComponent)
	if !ok {
		f.logger.Warn("select request for unknown panel", zap.Stringer("entity", target))
		return
	}

	anchor := newEntityAnchor(w, target)
	if err := f.ctrl.Begin(cam, anchor); err != nil {
		f.logger.Warn("begin flight", zap.String("panel", panel.Name), zap.Error(err))
		return
	}

	ecs.ForEach(w, component.SelectedTagComponent, func(e ecs.Entity, _ *component.SelectedTag) {
		ecs.Remove(w, e, component.SelectedTagComponent)
	})
	_ = ecs.Add(w, target, component.SelectedTagComponent, component.SelectedTag{})

	f.started(w, camera, target, anchor.AnchorPosition())
	f.logger.Info("flying to panel", zap.String("panel", panel.Name), zap.String("id", panel.ID.String()))
}

func (f *FlightSystem) flyHome(w *ecs.World, camera ecs.Entity, cam *component.Camera) {
	home, ok := ecs.Get(w, camera, component.CameraHomeComponent)
	if !ok {
		return
	}
	if err := f.ctrl.BeginTo(cam, home.Eye, nav.Point(home.LookAt)); err != nil {
		f.logger.Warn("begin home flight", zap.Error(err))
		return
	}

	ecs.ForEach(w, component.SelectedTagComponent, func(e ecs.Entity, _ *component.SelectedTag) {
		ecs.Remove(w, e, component.SelectedTagComponent)
	})

	f.started(w, camera, 0, home.LookAt)
	f.logger.Info("flying home")
}

func (f *FlightSystem) started(w *ecs.World, camera, target ecs.Entity, lookAt mgl64.Vec3) {
	_ = ecs.Add(w, camera, component.FlightComponent, component.Flight{
		Target: uint64(target),
		LookAt: lookAt,
	})
	w.Events().Push(ecs.Event{
		Type: ecs.EventFlightStarted,
		Data: ecs.FlightEvent{Camera: camera, Target: target},
	})
}
