package render

import (
	"image"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/flyto/ecs"
	"github.com/milk9111/flyto/ecs/component"
	"github.com/milk9111/flyto/ecs/system"
	"github.com/milk9111/flyto/nav"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	outlineColor  = color.RGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}
)

func init() {
	whiteImage.Fill(color.White)
}

type projectedQuad struct {
	quad   *component.Quad
	pts    [4][2]float32
	depth  float64
	chosen bool
}

// RenderSystem draws every Quad through the camera, farthest first.
type RenderSystem struct {
	Background color.Color

	face     text.Face
	vertices []ebiten.Vertex
	queue    []projectedQuad
}

func NewRenderSystem(background color.Color) *RenderSystem {
	return &RenderSystem{
		Background: background,
		face:       text.NewGoXFace(basicfont.Face7x13),
	}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if r.Background != nil {
		screen.Fill(r.Background)
	}

	_, cam, ok := ecs.First(w, component.CameraComponent)
	if !ok {
		return
	}

	bounds := screen.Bounds()
	width, height := float64(bounds.Dx()), float64(bounds.Dy())

	r.queue = r.queue[:0]
	ecs.ForEach(w, component.QuadComponent, func(e ecs.Entity, q *component.Quad) {
		pq, ok := project(&cam.Camera, system.WorldPosition(w, e), q, width, height)
		if !ok {
			return
		}
		if parent, ok := ecs.Get(w, e, component.ParentComponent); ok {
			pq.chosen = ecs.Has(w, ecs.Entity(parent.Entity), component.SelectedTagComponent)
		}
		r.queue = append(r.queue, pq)
	})

	sort.SliceStable(r.queue, func(i, j int) bool {
		return r.queue[i].depth > r.queue[j].depth
	})

	for i := range r.queue {
		pq := &r.queue[i]
		if pq.quad.Label != "" {
			r.drawLabel(screen, pq)
			continue
		}
		r.fill(screen, pq)
		if pq.chosen {
			outline(screen, pq)
		}
	}
}

func project(cam *nav.Camera, pos mgl64.Vec3, q *component.Quad, width, height float64) (projectedQuad, bool) {
	shape := system.QuadShape(q)
	if !shape.FacesPoint(pos, cam.Eye) {
		return projectedQuad{}, false
	}
	corners := shape.Corners(pos)

	pq := projectedQuad{quad: q}
	for i, c := range corners {
		x, y, depth, ok := cam.Project(c, width, height)
		if !ok {
			return projectedQuad{}, false
		}
		pq.pts[i] = [2]float32{float32(x), float32(y)}
		pq.depth += depth / 4
	}
	return pq, true
}

func (r *RenderSystem) fill(screen *ebiten.Image, pq *projectedQuad) {
	c := pq.quad.Color
	cr := float32(c.R) / 0xff
	cg := float32(c.G) / 0xff
	cb := float32(c.B) / 0xff
	ca := float32(c.A) / 0xff

	r.vertices = r.vertices[:0]
	for _, p := range pq.pts {
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX: p[0], DstY: p[1],
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	screen.DrawTriangles(r.vertices, []uint16{0, 1, 2, 0, 2, 3}, whiteSubImage, &ebiten.DrawTrianglesOptions{})
}

func outline(screen *ebiten.Image, pq *projectedQuad) {
	for i := range pq.pts {
		a, b := pq.pts[i], pq.pts[(i+1)%len(pq.pts)]
		vector.StrokeLine(screen, a[0], a[1], b[0], b[1], 2, outlineColor, true)
	}
}

// drawLabel fits the text into the projected label quad. The quad is
// treated as screen-aligned, which holds for the near-frontal views the
// app produces.
func (r *RenderSystem) drawLabel(screen *ebiten.Image, pq *projectedQuad) {
	minX, minY := pq.pts[0][0], pq.pts[0][1]
	maxX, maxY := minX, minY
	for _, p := range pq.pts[1:] {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}
	boxW, boxH := float64(maxX-minX), float64(maxY-minY)

	tw, th := text.Measure(pq.quad.Label, r.face, 0)
	if tw <= 0 || th <= 0 || boxW < 1 || boxH < 1 {
		return
	}
	scale := min(boxW/tw, boxH/th)

	op := &text.DrawOptions{}
	op.GeoM.Translate(-tw/2, -th/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(minX+maxX)/2, float64(minY+maxY)/2)
	op.ColorScale.ScaleWithColor(pq.quad.Color)
	op.Filter = ebiten.FilterLinear
	text.Draw(screen, pq.quad.Label, r.face, op)
}
