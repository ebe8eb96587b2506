package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const noSelection = "No panel selected"

// HUD is the overlay in the top-left corner: the selected panel's label,
// the last status message, and buttons mirroring the keyboard controls.
type HUD struct {
	ui       *ebitenui.UI
	selected *widget.Text
	status   *widget.Text
}

type hudActions struct {
	Home func()
	Next func()
	Copy func()
}

func NewHUD(actions hudActions) *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 160})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dim := color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	h := &HUD{}
	h.selected = widget.NewText(widget.TextOpts.Text(noSelection, &face, white))
	h.status = widget.NewText(widget.TextOpts.Text("", &face, dim))

	button := func(label string, fn func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Hover: btnHover, Pressed: btnIdle}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				if fn != nil {
					fn()
				}
			}),
		)
	}

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	buttons.AddChild(button("Home (Esc)", actions.Home))
	buttons.AddChild(button("Next (Tab)", actions.Next))
	buttons.AddChild(button("Copy pose (C)", actions.Copy))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(h.selected)
	panel.AddChild(buttons)
	panel.AddChild(h.status)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

func (h *HUD) Update() {
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}

func (h *HUD) SetSelected(label string) {
	if label == "" {
		label = noSelection
	}
	h.selected.Label = label
}

func (h *HUD) SetStatus(msg string) {
	h.status.Label = msg
}

// Hovered reports whether the pointer is over the HUD, in which case clicks
// belong to it and not to the scene.
func (h *HUD) Hovered() bool {
	return ebuiinput.UIHovered
}
