package system

import (
	"github.com/milk9111/flyto/ecs"
	"github.com/milk9111/flyto/ecs/component"
)

// CycleSystem resolves a CycleRequest into a SelectRequest for the panel
// Step places away from the current selection, wrapping around. With no
// selection, +1 picks the first panel and -1 the last.
type CycleSystem struct{}

func NewCycleSystem() *CycleSystem {
	return &CycleSystem{}
}

func (c *CycleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	camera, req, ok := ecs.First(w, component.CycleRequestComponent)
	if !ok {
		return
	}
	step := req.Step
	ecs.Remove(w, camera, component.CycleRequestComponent)

	panels := Panels(w)
	if len(panels) == 0 || step == 0 {
		return
	}

	current := -1
	for i, e := range panels {
		if ecs.Has(w, e, component.SelectedTagComponent) {
			current = i
			break
		}
	}

	var next int
	if current < 0 {
		if step > 0 {
			next = step - 1
		} else {
			next = len(panels) + step
		}
	} else {
		next = current + step
	}
	next %= len(panels)
	if next < 0 {
		next += len(panels)
	}

	_ = ecs.Add(w, camera, component.SelectRequestComponent, component.SelectRequest{Target: uint64(panels[next])})
}
