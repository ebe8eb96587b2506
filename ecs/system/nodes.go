package system

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/flyto/ecs"
	"github.com/milk9111/flyto/ecs/component"
	"github.com/milk9111/flyto/nav"
)

const maxParentDepth = 32

// WorldPosition sums e's Transform with those of its parents.
func WorldPosition(w *ecs.World, e ecs.Entity) mgl64.Vec3 {
	var pos mgl64.Vec3
	for depth := 0; depth < maxParentDepth && w.IsAlive(e); depth++ {
		if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			pos = pos.Add(t.Position)
		}
		parent, ok := ecs.Get(w, e, component.ParentComponent)
		if !ok {
			break
		}
		e = ecs.Entity(parent.Entity)
	}
	return pos
}

// Panels returns panel entities sorted by their scene order.
func Panels(w *ecs.World) []ecs.Entity {
	type ordered struct {
		e     ecs.Entity
		order int
	}
	var found []ordered
	ecs.ForEach(w, component.PanelComponent, func(e ecs.Entity, p *component.Panel) {
		found = append(found, ordered{e: e, order: p.Order})
	})
	sort.SliceStable(found, func(i, j int) bool { return found[i].order < found[j].order })

	out := make([]ecs.Entity, len(found))
	for i, f := range found {
		out[i] = f.e
	}
	return out
}

// PanelNodes builds one pick candidate per panel. Each candidate carries
// no shape of its own; its children are the panel's quads, so any quad hit
// resolves to the panel. Node.Handle holds the panel entity.
func PanelNodes(w *ecs.World) []*nav.Node {
	panels := Panels(w)
	nodes := make([]*nav.Node, 0, len(panels))
	for _, e := range panels {
		p, _ := ecs.Get(w, e, component.PanelComponent)
		node := &nav.Node{
			Name:     p.Name,
			Position: WorldPosition(w, e),
			Handle:   e,
		}
		if children, ok := ecs.Get(w, e, component.ChildrenComponent); ok {
			for _, raw := range children.Entities {
				child := ecs.Entity(raw)
				quad, ok := ecs.Get(w, child, component.QuadComponent)
				if !ok {
					continue
				}
				node.Children = append(node.Children, &nav.Node{
					Name:     p.Name + "/quad",
					Position: WorldPosition(w, child),
					Shape:    QuadShape(quad),
					Handle:   child,
				})
			}
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// QuadShape is the shape both picking and drawing use for a Quad, so a
// panel is hit from exactly the side it is drawn from.
func QuadShape(q *component.Quad) nav.Quad {
	return nav.Quad{Width: q.Width, Height: q.Height}
}

// entityAnchor resolves an entity's world position each time it is asked,
// so flights follow a panel that moves mid-flight. A destroyed entity
// keeps its last known position.
type entityAnchor struct {
	w    *ecs.World
	e    ecs.Entity
	last mgl64.Vec3
}

func newEntityAnchor(w *ecs.World, e ecs.Entity) *entityAnchor {
	return &entityAnchor{w: w, e: e, last: WorldPosition(w, e)}
}

func (a *entityAnchor) AnchorPosition() mgl64.Vec3 {
	if a.w.IsAlive(a.e) {
		a.last = WorldPosition(a.w, a.e)
	}
	return a.last
}
