package nav

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Anchor is anything with a world position the camera can fly to.
type Anchor interface {
	AnchorPosition() mgl64.Vec3
}

// Point is a fixed anchor.
type Point mgl64.Vec3

func (p Point) AnchorPosition() mgl64.Vec3 {
	return mgl64.Vec3(p)
}

// Node is a pickable object. A node may carry its own Shape and any number
// of nested children; the top-level node handed to the Picker is the
// logical owner of every primitive beneath it. Handle links back to
// whatever the node stands for (a panel entity, for example).
type Node struct {
	Name     string
	Position mgl64.Vec3
	Shape    Shape
	Children []*Node
	Handle   any
}

func (n *Node) AnchorPosition() mgl64.Vec3 {
	return n.Position
}

// Hit is a single ray intersection.
type Hit struct {
	Distance float64
	Point    mgl64.Vec3
	Node     *Node // primitive that was intersected
	Owner    *Node // candidate the primitive belongs to
}

// Picker resolves which candidate lies under a pointer.
type Picker struct {
	hits []Hit
}

func NewPicker() *Picker {
	return &Picker{}
}

// Intersect returns every hit of r against candidates and their nested
// children, nearest first. Hits at equal distance keep traversal order.
func (p *Picker) Intersect(r Ray, candidates []*Node) []Hit {
	p.hits = p.hits[:0]
	for _, c := range candidates {
		if c == nil {
			continue
		}
		p.collect(r, c, c, 0)
	}
	sort.SliceStable(p.hits, func(i, j int) bool {
		return p.hits[i].Distance < p.hits[j].Distance
	})
	out := make([]Hit, len(p.hits))
	copy(out, p.hits)
	return out
}

const maxPickDepth = 32

func (p *Picker) collect(r Ray, n, owner *Node, depth int) {
	if depth > maxPickDepth {
		return
	}
	if n.Shape != nil {
		if t, ok := n.Shape.IntersectRay(r, n.Position); ok {
			p.hits = append(p.hits, Hit{
				Distance: t,
				Point:    r.At(t),
				Node:     n,
				Owner:    owner,
			})
		}
	}
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		p.collect(r, child, owner, depth+1)
	}
}

// Pick casts a ray from cam through (ndcX, ndcY) and returns the logical
// owner of the nearest hit, or false when the ray misses everything.
func (p *Picker) Pick(ndcX, ndcY float64, cam RayCaster, candidates []*Node) (*Node, bool) {
	if cam == nil || math.IsNaN(ndcX) || math.IsNaN(ndcY) {
		return nil, false
	}
	hits := p.Intersect(cam.RayThrough(ndcX, ndcY), candidates)
	if len(hits) == 0 {
		return nil, false
	}
	return hits[0].Owner, true
}
