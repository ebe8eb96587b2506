package main

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/milk9111/flyto/ecs"
	"github.com/milk9111/flyto/ecs/component"
	"github.com/milk9111/flyto/ecs/entity"
	"github.com/milk9111/flyto/ecs/render"
	"github.com/milk9111/flyto/ecs/system"
	"github.com/milk9111/flyto/prefabs"
)

type Game struct {
	frames    int
	debug     bool
	sceneName string
	logger    *zap.Logger

	input   *Input
	hud     *HUD
	watcher *prefabs.Watcher

	world     *ecs.World
	scene     entity.Scene
	scheduler *ecs.Scheduler
	orbit     *system.OrbitSystem
	render    *render.RenderSystem
}

func NewGame(sceneName string, debug bool, logger *zap.Logger) (*Game, error) {
	g := &Game{
		debug:     debug,
		sceneName: sceneName,
		logger:    logger,
		input:     NewInput(),
	}
	g.hud = NewHUD(hudActions{
		Home: g.input.QueueHome,
		Next: func() { g.input.QueueCycle(1) },
		Copy: g.copyPose,
	})
	g.input.hud = g.hud

	if err := g.loadScene(); err != nil {
		return nil, err
	}

	watcher, err := prefabs.NewWatcher(prefabs.WatchDirs()...)
	if err != nil {
		// the prefab dir only exists when running from a checkout
		logger.Info("hot reload disabled", zap.Error(err))
	} else {
		g.watcher = watcher
	}
	return g, nil
}

// loadScene builds a fresh world from the scene prefab. On a reload the
// camera pose, the selected panel and any unfinished flight carry over; on
// failure the running world is kept.
func (g *Game) loadScene() error {
	spec, err := prefabs.LoadSceneSpec(g.sceneName)
	if err != nil {
		return err
	}
	flightCfg, err := spec.FlightConfig()
	if err != nil {
		return err
	}
	if g.debug {
		g.logger.Debug("scene spec", zap.String("dump", spew.Sdump(spec)))
	}

	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, spec)
	if err != nil {
		return err
	}

	flight, err := system.NewFlightSystem(flightCfg, g.logger.Named("flight"))
	if err != nil {
		return err
	}
	orbit := system.NewOrbitSystem()

	if g.world != nil {
		g.carryOver(w, scene)
	}

	g.world = w
	g.scene = scene
	g.orbit = orbit
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(g.input),
		system.NewPickSystem(g.logger.Named("pick")),
		system.NewCycleSystem(),
		flight,
		orbit,
	)
	g.render = render.NewRenderSystem(spec.Background.RGBA)
	g.hud.SetSelected(g.selectedLabel())

	g.logger.Info("scene loaded",
		zap.String("scene", spec.Name),
		zap.Int("panels", len(scene.Panels)),
		zap.Float64("flight_step", flightCfg.Step),
	)
	return nil
}

func (g *Game) carryOver(next *ecs.World, scene entity.Scene) {
	eye, lookAt, ok := g.pose()
	if ok {
		if cam, ok := ecs.Get(next, scene.Camera, component.CameraComponent); ok {
			cam.SetPosition(eye)
			cam.LookAt(lookAt)
		}
		if orbit, ok := ecs.Get(next, scene.Camera, component.OrbitComponent); ok {
			orbit.Target = lookAt
		}
	}
	if vp, ok := ecs.Get(g.world, g.scene.Camera, component.ViewportComponent); ok {
		_ = ecs.Add(next, scene.Camera, component.ViewportComponent, *vp)
	}

	system.CarrySelection(g.world, next)
}

// pose returns the camera eye and the point it orbits around.
func (g *Game) pose() (eye, lookAt mgl64.Vec3, ok bool) {
	cam, ok := ecs.Get(g.world, g.scene.Camera, component.CameraComponent)
	if !ok {
		return eye, lookAt, false
	}
	eye = cam.Eye
	switch {
	case ecs.Has(g.world, g.scene.Camera, component.FlightComponent):
		f, _ := ecs.Get(g.world, g.scene.Camera, component.FlightComponent)
		lookAt = f.LookAt
	case g.orbit != nil && g.orbit.Controller() != nil:
		lookAt = g.orbit.Controller().Target
	default:
		lookAt = eye.Add(cam.Aim())
	}
	return eye, lookAt, true
}

func (g *Game) selectedLabel() string {
	label := ""
	ecs.ForEach2(g.world, component.PanelComponent, component.SelectedTagComponent, func(_ ecs.Entity, p *component.Panel, _ *component.SelectedTag) {
		label = p.Label
		if label == "" {
			label = p.Name
		}
	})
	return label
}

func (g *Game) copyPose() {
	eye, lookAt, ok := g.pose()
	if !ok {
		return
	}
	data, err := copyPose(prefabs.Vec3(eye), prefabs.Vec3(lookAt))
	if err != nil {
		g.logger.Warn("copy pose", zap.Error(err))
		g.hud.SetStatus("Copy failed")
		return
	}
	g.logger.Info("pose copied", zap.ByteString("yaml", data))
	g.hud.SetStatus("Pose copied to clipboard")
}

func (g *Game) Update() error {
	g.frames++

	g.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyPose()
	}

	g.hud.Update()
	g.scheduler.Update(g.world)
	g.handleEvents()
	return nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.logger.Warn("watch", zap.Error(err))
		}
	default:
	}

	changes := g.watcher.Poll()
	if len(changes) == 0 {
		return
	}
	for _, c := range changes {
		g.logger.Debug("prefab changed", zap.String("path", c.Path), zap.Int("kind", int(c.Kind)))
	}
	if err := g.loadScene(); err != nil {
		g.logger.Error("reload scene", zap.Error(err))
		g.hud.SetStatus("Reload failed, see log")
		return
	}
	g.hud.SetStatus("Scene reloaded")
}

func (g *Game) handleEvents() {
	for _, evt := range g.world.Events().Drain() {
		switch evt.Type {
		case ecs.EventFlightStarted:
			g.hud.SetSelected(g.selectedLabel())
			g.hud.SetStatus("")
		case ecs.EventFlightFinished:
			data, _ := evt.Data.(ecs.FlightEvent)
			g.logger.Debug("flight finished", zap.Stringer("target", data.Target))
		case ecs.EventPickMissed:
			if g.debug {
				g.hud.SetStatus("Missed")
			}
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	g.hud.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrintAt(screen, g.debugText(), 12, screen.Bounds().Dy()-64)
	}
}

func (g *Game) debugText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Frames: %d    FPS: %.2f    TPS: %.2f\n", g.frames, ebiten.ActualFPS(), ebiten.ActualTPS())
	if cam, ok := ecs.Get(g.world, g.scene.Camera, component.CameraComponent); ok {
		fmt.Fprintf(&b, "Eye: %.2f %.2f %.2f\n", cam.Eye.X(), cam.Eye.Y(), cam.Eye.Z())
	}
	if f, ok := ecs.Get(g.world, g.scene.Camera, component.FlightComponent); ok {
		fmt.Fprintf(&b, "Flight: %.0f%%\n", f.Progress*100)
	}
	return b.String()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	if vp, ok := ecs.Get(g.world, g.scene.Camera, component.ViewportComponent); ok {
		vp.Width, vp.Height = outsideWidth, outsideHeight
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
