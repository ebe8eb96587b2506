package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a position relative to the entity's Parent, or to the world
// when there is none.
type Transform struct {
	Position mgl64.Vec3
}

var TransformComponent = NewComponent[Transform]()
