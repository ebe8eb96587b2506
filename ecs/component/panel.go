package component

import (
	"image/color"

	"github.com/google/uuid"
)

// Panel is the logical identity of a pickable panel. The quads drawn for
// it are child entities.
type Panel struct {
	ID    uuid.UUID
	Name  string
	Label string
	// Order is the panel's position in the scene file; picking and Tab
	// cycling walk panels in this order.
	Order int
}

var PanelComponent = NewComponent[Panel]()

// Quad is a flat rectangle facing +Z, centred on the entity's world
// position. A non-empty Label draws text instead of a fill.
type Quad struct {
	Width  float64
	Height float64
	Color  color.RGBA
	Label  string
}

var QuadComponent = NewComponent[Quad]()

// Parent links a child to its owner (ecs.Entity is uint64).
type Parent struct {
	Entity uint64
}

var ParentComponent = NewComponent[Parent]()

type Children struct {
	Entities []uint64
}

var ChildrenComponent = NewComponent[Children]()
