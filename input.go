package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/flyto/ecs/system"
)

// Input reads mouse and keyboard state from ebiten. HUD buttons queue the
// same actions as their keys.
type Input struct {
	hud *HUD

	queuedCycle int
	queuedHome  bool
	// hudDrag is set while a press that started on the HUD is held.
	hudDrag bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) QueueCycle(step int) {
	i.queuedCycle += step
}

func (i *Input) QueueHome() {
	i.queuedHome = true
}

func (i *Input) Poll() system.InputFrame {
	x, y := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()

	overHUD := i.hud != nil && i.hud.Hovered()
	justPressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	held := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if justPressed {
		i.hudDrag = overHUD
	}
	if !held {
		i.hudDrag = false
	}

	frame := system.InputFrame{
		CursorX: float64(x),
		CursorY: float64(y),
		Pressed: justPressed && !i.hudDrag,
		Held:    held && !i.hudDrag,
		Cycle:   i.queuedCycle,
		Home:    i.queuedHome || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	if !overHUD {
		frame.Wheel = wy
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			frame.Cycle--
		} else {
			frame.Cycle++
		}
	}

	i.queuedCycle, i.queuedHome = 0, false
	return frame
}
