package system

import (
	"github.com/milk9111/flyto/ecs"
	"github.com/milk9111/flyto/ecs/component"
	"github.com/milk9111/flyto/nav"
)

// InputFrame is one tick of raw input.
type InputFrame struct {
	CursorX, CursorY float64
	Pressed          bool // primary button went down this tick
	Held             bool
	Wheel            float64 // notches, positive away from the user
	Cycle            int     // +1 next panel, -1 previous
	Home             bool
}

// InputSource supplies input frames; the game reads them from ebiten.
type InputSource interface {
	Poll() InputFrame
}

type InputSystem struct {
	src     InputSource
	lastX   float64
	lastY   float64
	hasLast bool
}

func NewInputSystem(src InputSource) *InputSystem {
	return &InputSystem{src: src}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.src == nil {
		return
	}

	camera, pointer, ok := ecs.First(w, component.PointerComponent)
	if !ok {
		return
	}

	frame := i.src.Poll()

	dx, dy := 0.0, 0.0
	if i.hasLast {
		dx = frame.CursorX - i.lastX
		dy = frame.CursorY - i.lastY
	}
	i.lastX, i.lastY, i.hasLast = frame.CursorX, frame.CursorY, true

	pointer.X, pointer.Y = frame.CursorX, frame.CursorY
	pointer.DeltaX, pointer.DeltaY = dx, dy
	pointer.Pressed = frame.Pressed
	pointer.Held = frame.Held || frame.Pressed
	pointer.Wheel = frame.Wheel
	if !pointer.Held {
		pointer.Captured = false
	}

	pointer.Valid = false
	if vp, ok := ecs.Get(w, camera, component.ViewportComponent); ok {
		pointer.NDCX, pointer.NDCY, pointer.Valid = nav.NormalizePointer(frame.CursorX, frame.CursorY, vp.Width, vp.Height)
		if cam, ok := ecs.Get(w, camera, component.CameraComponent); ok && pointer.Valid {
			cam.Aspect = vp.Width / vp.Height
		}
	}

	if frame.Cycle != 0 {
		_ = ecs.Add(w, camera, component.CycleRequestComponent, component.CycleRequest{Step: frame.Cycle})
	}
	if frame.Home {
		_ = ecs.Add(w, camera, component.ResetViewRequestComponent, component.ResetViewRequest{})
	}
}
