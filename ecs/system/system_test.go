package system

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/milk9111/flyto/ecs"
	"github.com/milk9111/flyto/ecs/component"
	"github.com/milk9111/flyto/ecs/entity"
	"github.com/milk9111/flyto/nav"
	"github.com/milk9111/flyto/prefabs"
)

const testScene = `
name: test
camera:
  position: [0, 1.2, 6]
  look_at: [0, 1.2, 0]
  fov: 60
orbit:
  damping: 0
flight:
  step: 0.02
  standoff: [0, 0, 3]
panels:
  - {name: hero, label: HERO, width: 4, height: 2, position: [0, 1.2, 0]}
  - {name: feature_a, label: A, width: 3, height: 1.6, position: [0, 1.2, -5]}
  - {name: feature_b, label: B, width: 3, height: 1.6, position: [2.5, 1.2, -3]}
`

type fakeInput struct {
	frames []InputFrame
}

func (f *fakeInput) Poll() InputFrame {
	if len(f.frames) == 0 {
		return InputFrame{}
	}
	frame := f.frames[0]
	f.frames = f.frames[1:]
	return frame
}

type fixture struct {
	w      *ecs.World
	scene  entity.Scene
	input  *fakeInput
	sched  *ecs.Scheduler
	flight *FlightSystem
	orbit  *OrbitSystem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newSceneFixture(t, testScene)
}

func newSceneFixture(t *testing.T, sceneSrc string) *fixture {
	t.Helper()
	spec, err := prefabs.ParseSceneSpec([]byte(sceneSrc))
	require.NoError(t, err)

	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, spec)
	require.NoError(t, err)

	vp, ok := ecs.Get(w, scene.Camera, component.ViewportComponent)
	require.True(t, ok)
	vp.Width, vp.Height = 800, 600

	cfg, err := spec.FlightConfig()
	require.NoError(t, err)
	flight, err := NewFlightSystem(cfg, zap.NewNop())
	require.NoError(t, err)

	f := &fixture{w: w, scene: scene, input: &fakeInput{}, flight: flight, orbit: NewOrbitSystem()}
	f.sched = ecs.NewScheduler(
		NewInputSystem(f.input),
		NewPickSystem(zap.NewNop()),
		NewCycleSystem(),
		f.flight,
		f.orbit,
	)
	return f
}

func (f *fixture) tick(frames ...InputFrame) {
	f.input.frames = append(f.input.frames, frames...)
	f.sched.Update(f.w)
}

func (f *fixture) ticks(n int) {
	for i := 0; i < n; i++ {
		f.sched.Update(f.w)
	}
}

func (f *fixture) camera(t *testing.T) *component.Camera {
	t.Helper()
	cam, ok := ecs.Get(f.w, f.scene.Camera, component.CameraComponent)
	require.True(t, ok)
	return cam
}

func (f *fixture) selected() []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(f.w, component.SelectedTagComponent, func(e ecs.Entity, _ *component.SelectedTag) {
		out = append(out, e)
	})
	return out
}

func eventTypes(events []ecs.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func TestPanelNodesFollowSceneOrder(t *testing.T) {
	f := newFixture(t)
	nodes := PanelNodes(f.w)
	require.Len(t, nodes, 3)
	assert.Equal(t, "hero", nodes[0].Name)
	assert.Equal(t, "feature_b", nodes[2].Name)
	assert.Equal(t, f.scene.Panels[0], nodes[0].Handle)
	require.Len(t, nodes[0].Children, 2, "surface and label")
	assert.Equal(t, mgl64.Vec3{0, 1.2, 0.01}, nodes[0].Children[1].Position)
}

func TestWorldPositionSumsParents(t *testing.T) {
	w := ecs.NewWorld()
	root := w.CreateEntity()
	child := w.CreateEntity()
	require.NoError(t, ecs.Add(w, root, component.TransformComponent, component.Transform{Position: mgl64.Vec3{1, 2, 3}}))
	require.NoError(t, ecs.Add(w, child, component.TransformComponent, component.Transform{Position: mgl64.Vec3{0, 0, 1}}))
	require.NoError(t, ecs.Add(w, child, component.ParentComponent, component.Parent{Entity: uint64(root)}))

	assert.Equal(t, mgl64.Vec3{1, 2, 4}, WorldPosition(w, child))

	w.DestroyEntity(root)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, WorldPosition(w, child))
}

func TestPickSelectsNearestPanel(t *testing.T) {
	f := newFixture(t)
	f.w.Events().Drain()

	f.tick(InputFrame{CursorX: 400, CursorY: 300, Pressed: true, Held: true})

	pointer, _ := ecs.Get(f.w, f.scene.Camera, component.PointerComponent)
	assert.True(t, pointer.Captured)
	assert.InDelta(t, 800.0/600.0, f.camera(t).Aspect, 1e-12)

	events := f.w.Events().Drain()
	require.NotEmpty(t, events)
	assert.Equal(t, ecs.EventPanelPicked, events[0].Type)
	pick := events[0].Data.(ecs.PickEvent)
	assert.Equal(t, f.scene.Panels[0], pick.Panel)
	assert.InDelta(t, 5.99, pick.Distance, 1e-9, "label sits in front of the surface")
	assert.Contains(t, eventTypes(events), ecs.EventFlightStarted)

	assert.Equal(t, []ecs.Entity{f.scene.Panels[0]}, f.selected())
	flight, ok := ecs.Get(f.w, f.scene.Camera, component.FlightComponent)
	require.True(t, ok)
	assert.Equal(t, uint64(f.scene.Panels[0]), flight.Target)
}

func TestPickMissOrbitsInstead(t *testing.T) {
	f := newFixture(t)
	f.w.Events().Drain()
	before := f.camera(t).Eye

	f.tick(
		InputFrame{CursorX: 0, CursorY: 0, Pressed: true, Held: true},
		InputFrame{CursorX: 40, CursorY: 0, Held: true},
	)
	events := f.w.Events().Drain()
	assert.Equal(t, []string{ecs.EventPickMissed}, eventTypes(events))
	assert.False(t, ecs.Has(f.w, f.scene.Camera, component.SelectRequestComponent))
	assert.False(t, ecs.Has(f.w, f.scene.Camera, component.FlightComponent))

	f.tick()
	pointer, _ := ecs.Get(f.w, f.scene.Camera, component.PointerComponent)
	assert.False(t, pointer.Captured)
	assert.NotEqual(t, before, f.camera(t).Eye, "drag rotated the camera")
	assert.InDelta(t, 6, f.camera(t).Eye.Sub(mgl64.Vec3{0, 1.2, 0}).Len(), 1e-9)
}

func TestFlightEndsAtStandoffAndHandsBackToOrbit(t *testing.T) {
	f := newFixture(t)
	hero := f.scene.Panels[0]
	require.NoError(t, ecs.Add(f.w, f.scene.Camera, component.SelectRequestComponent, component.SelectRequest{Target: uint64(hero)}))

	// dragging during a flight is ignored
	for i := 0; i < 49; i++ {
		f.tick(InputFrame{CursorX: float64(i * 10), CursorY: 700, Held: true})
		require.True(t, ecs.Has(f.w, f.scene.Camera, component.FlightComponent), "tick %d", i)
	}
	f.tick()

	assert.Equal(t, mgl64.Vec3{0, 1.2, 3}, f.camera(t).Eye)
	assert.Less(t, f.camera(t).Aim().Sub(mgl64.Vec3{0, 0, -1}).Len(), 1e-9)
	assert.False(t, ecs.Has(f.w, f.scene.Camera, component.FlightComponent), "orbit took the camera back")
	assert.Equal(t, mgl64.Vec3{0, 1.2, 0}, f.orbit.Controller().Target)

	events := eventTypes(f.w.Events().Drain())
	assert.Contains(t, events, ecs.EventFlightStarted)
	assert.Contains(t, events, ecs.EventFlightFinished)

	f.ticks(5)
	assert.Less(t, f.camera(t).Eye.Sub(mgl64.Vec3{0, 1.2, 3}).Len(), 1e-9, "idle orbit holds the pose")
}

func TestFlightReplacedMidway(t *testing.T) {
	f := newFixture(t)
	hero, featureB := f.scene.Panels[0], f.scene.Panels[2]

	require.NoError(t, ecs.Add(f.w, f.scene.Camera, component.SelectRequestComponent, component.SelectRequest{Target: uint64(hero)}))
	f.ticks(20)
	mid := f.camera(t).Eye

	require.NoError(t, ecs.Add(f.w, f.scene.Camera, component.SelectRequestComponent, component.SelectRequest{Target: uint64(featureB)}))
	f.tick()
	end := mgl64.Vec3{2.5, 1.2, 0}
	assert.Less(t, f.camera(t).Eye.Sub(mid).Len(), mid.Sub(end).Len()*0.1, "new flight starts from the live position")
	assert.Equal(t, []ecs.Entity{featureB}, f.selected())

	f.ticks(49)
	assert.Equal(t, end, f.camera(t).Eye)
}

func TestFlightFollowsMovingPanel(t *testing.T) {
	f := newFixture(t)
	hero := f.scene.Panels[0]
	require.NoError(t, ecs.Add(f.w, f.scene.Camera, component.SelectRequestComponent, component.SelectRequest{Target: uint64(hero)}))
	f.ticks(10)

	tr, _ := ecs.Get(f.w, hero, component.TransformComponent)
	tr.Position = mgl64.Vec3{1, 1.2, 0}
	f.ticks(40)

	// the end point is fixed when the flight starts, the aim is not
	moved := mgl64.Vec3{1, 1.2, 0}
	cam := f.camera(t)
	assert.Less(t, cam.Eye.Sub(mgl64.Vec3{0, 1.2, 3}).Len(), 1e-9, "%v", cam.Eye)
	assert.Less(t, cam.Aim().Sub(moved.Sub(cam.Eye).Normalize()).Len(), 1e-9)
	assert.Equal(t, moved, f.orbit.Controller().Target)
}

func TestResetViewFliesHome(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, ecs.Add(f.w, f.scene.Camera, component.SelectRequestComponent, component.SelectRequest{Target: uint64(f.scene.Panels[1])}))
	f.ticks(50)
	require.Len(t, f.selected(), 1)

	f.tick(InputFrame{Home: true})
	assert.Empty(t, f.selected())
	f.ticks(49)

	assert.Equal(t, mgl64.Vec3{0, 1.2, 6}, f.camera(t).Eye)
	assert.Equal(t, mgl64.Vec3{0, 1.2, 0}, f.orbit.Controller().Target)
}

func TestSelectUnknownPanelIgnored(t *testing.T) {
	f := newFixture(t)
	before := f.camera(t).Eye
	require.NoError(t, ecs.Add(f.w, f.scene.Camera, component.SelectRequestComponent, component.SelectRequest{Target: uint64(f.scene.Camera)}))
	f.tick()

	assert.False(t, ecs.Has(f.w, f.scene.Camera, component.SelectRequestComponent))
	assert.False(t, ecs.Has(f.w, f.scene.Camera, component.FlightComponent))
	assert.Less(t, f.camera(t).Eye.Sub(before).Len(), 1e-9)
}

func TestCycleWraps(t *testing.T) {
	cases := []struct {
		name     string
		selected int // -1 = none
		step     int
		want     int
	}{
		{"first_from_none", -1, 1, 0},
		{"last_from_none", -1, -1, 2},
		{"next", 0, 1, 1},
		{"wrap_forward", 2, 1, 0},
		{"wrap_back", 0, -1, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			if c.selected >= 0 {
				require.NoError(t, ecs.Add(f.w, f.scene.Panels[c.selected], component.SelectedTagComponent, component.SelectedTag{}))
			}
			require.NoError(t, ecs.Add(f.w, f.scene.Camera, component.CycleRequestComponent, component.CycleRequest{Step: c.step}))

			NewCycleSystem().Update(f.w)

			req, ok := ecs.Get(f.w, f.scene.Camera, component.SelectRequestComponent)
			require.True(t, ok)
			assert.Equal(t, uint64(f.scene.Panels[c.want]), req.Target)
			assert.False(t, ecs.Has(f.w, f.scene.Camera, component.CycleRequestComponent))
		})
	}
}

func TestPickFromBehindMisses(t *testing.T) {
	f := newFixture(t)
	cam := f.camera(t)
	cam.SetPosition(mgl64.Vec3{0, 1.2, -10})
	cam.LookAt(mgl64.Vec3{0, 1.2, 0})
	f.w.Events().Drain()

	for _, node := range PanelNodes(f.w) {
		for _, child := range node.Children {
			quad := child.Shape.(nav.Quad)
			assert.False(t, quad.FacesPoint(child.Position, cam.Eye), "%s is culled from behind", child.Name)
		}
	}

	f.tick(InputFrame{CursorX: 400, CursorY: 300, Pressed: true, Held: true})
	assert.Equal(t, []string{ecs.EventPickMissed}, eventTypes(f.w.Events().Drain()))
	assert.Empty(t, f.selected())
}

// reordered lists the same panels in a different order, so entity handles
// differ from testScene while panel IDs do not.
func reordered(t *testing.T) *fixture {
	t.Helper()
	lines := strings.Split(testScene, "\n")
	var panels, rest []string
	for _, l := range lines {
		if strings.HasPrefix(l, "  - {name:") {
			panels = append([]string{l}, panels...)
			continue
		}
		rest = append(rest, l)
	}
	return newSceneFixture(t, strings.Join(rest, "\n")+strings.Join(panels, "\n")+"\n")
}

func TestCarrySelectionResumesFlight(t *testing.T) {
	prev := newFixture(t)
	featureB := prev.scene.Panels[2]
	require.NoError(t, ecs.Add(prev.w, prev.scene.Camera, component.SelectRequestComponent, component.SelectRequest{Target: uint64(featureB)}))
	prev.ticks(10)
	require.True(t, ecs.Has(prev.w, prev.scene.Camera, component.FlightComponent))

	next := reordered(t)
	nextB := next.scene.Panels[0]
	require.NotEqual(t, featureB, nextB)
	cam := next.camera(t)
	cam.SetPosition(prev.camera(t).Eye)
	cam.LookAt(mgl64.Vec3{2.5, 1.2, -3})

	CarrySelection(prev.w, next.w)
	assert.Equal(t, []ecs.Entity{nextB}, next.selected())
	req, ok := ecs.Get(next.w, next.scene.Camera, component.SelectRequestComponent)
	require.True(t, ok)
	assert.Equal(t, uint64(nextB), req.Target)

	next.ticks(50)
	assert.Equal(t, mgl64.Vec3{2.5, 1.2, 0}, next.camera(t).Eye)
	assert.False(t, ecs.Has(next.w, next.scene.Camera, component.FlightComponent))
}

func TestCarrySelectionAfterFlightDone(t *testing.T) {
	prev := newFixture(t)
	hero := prev.scene.Panels[0]
	require.NoError(t, ecs.Add(prev.w, prev.scene.Camera, component.SelectRequestComponent, component.SelectRequest{Target: uint64(hero)}))
	prev.ticks(50)

	next := reordered(t)
	CarrySelection(prev.w, next.w)
	assert.Equal(t, []ecs.Entity{next.scene.Panels[2]}, next.selected())
	assert.False(t, ecs.Has(next.w, next.scene.Camera, component.SelectRequestComponent), "finished flight is not replayed")
	assert.False(t, ecs.Has(next.w, next.scene.Camera, component.ResetViewRequestComponent))
}

func TestCarrySelectionResumesHomeFlight(t *testing.T) {
	prev := newFixture(t)
	require.NoError(t, ecs.Add(prev.w, prev.scene.Camera, component.SelectRequestComponent, component.SelectRequest{Target: uint64(prev.scene.Panels[0])}))
	prev.ticks(50)
	prev.tick(InputFrame{Home: true})
	prev.ticks(5)

	next := newFixture(t)
	CarrySelection(prev.w, next.w)
	assert.Empty(t, next.selected())
	assert.True(t, ecs.Has(next.w, next.scene.Camera, component.ResetViewRequestComponent))
}
