package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/flyto/ecs"
	"github.com/milk9111/flyto/ecs/component"
	"github.com/milk9111/flyto/nav"
)

// PickSystem turns a press over a panel into a SelectRequest. A press
// that hits a panel captures the pointer so the same drag does not orbit.
type PickSystem struct {
	picker *nav.Picker
	logger *zap.Logger
}

func NewPickSystem(logger *zap.Logger) *PickSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PickSystem{picker: nav.NewPicker(), logger: logger}
}

func (p *PickSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	camera, cam, ok := ecs.First(w, component.CameraComponent)
	if !ok {
		return
	}
	pointer, ok := ecs.Get(w, camera, component.PointerComponent)
	if !ok || !pointer.Pressed || !pointer.Valid {
		return
	}

	ray := cam.RayThrough(pointer.NDCX, pointer.NDCY)
	hits := p.picker.Intersect(ray, PanelNodes(w))
	if len(hits) == 0 {
		p.logger.Debug("pick missed",
			zap.Float64("ndc_x", pointer.NDCX),
			zap.Float64("ndc_y", pointer.NDCY),
		)
		w.Events().Push(ecs.Event{Type: ecs.EventPickMissed})
		return
	}

	nearest := hits[0]
	panel, ok := nearest.Owner.Handle.(ecs.Entity)
	if !ok {
		return
	}

	pointer.Captured = true
	if err := ecs.Add(w, camera, component.SelectRequestComponent, component.SelectRequest{Target: uint64(panel)}); err != nil {
		p.logger.Warn("select request", zap.Error(err))
		return
	}

	p.logger.Debug("panel picked",
		zap.String("panel", nearest.Owner.Name),
		zap.Float64("distance", nearest.Distance),
		zap.Int("hits", len(hits)),
	)
	w.Events().Push(ecs.Event{
		Type: ecs.EventPanelPicked,
		Data: ecs.PickEvent{Panel: panel, Distance: nearest.Distance},
	})
}
