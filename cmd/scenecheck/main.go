// Command scenecheck validates a scene prefab without opening a window and
// simulates the flight from the home pose to every panel.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/milk9111/flyto/common"
	"github.com/milk9111/flyto/ecs/entity"
	"github.com/milk9111/flyto/nav"
	"github.com/milk9111/flyto/prefabs"
)

func main() {
	scene := flag.String("scene", prefabs.DefaultScene, "scene prefab name, or a path to a YAML file")
	dump := flag.Bool("dump", false, "dump the parsed scene")
	flag.Parse()

	logger, err := common.NewLogger(true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	spec, err := load(*scene)
	if err != nil {
		logger.Fatal("invalid scene", zap.String("scene", *scene), zap.Error(err))
	}
	if *dump {
		spew.Fdump(os.Stdout, spec)
	}

	cfg, err := spec.FlightConfig()
	if err != nil {
		logger.Fatal("flight config", zap.Error(err))
	}
	ticks, err := simulate(spec, cfg, logger)
	if err != nil {
		logger.Fatal("simulate", zap.Error(err))
	}
	logger.Info("scene ok",
		zap.String("name", spec.Name),
		zap.Int("panels", len(spec.Panels)),
		zap.Int("ticks_per_flight", ticks),
	)
}

func load(scene string) (prefabs.SceneSpec, error) {
	if data, err := os.ReadFile(scene); err == nil {
		spec, err := prefabs.ParseSceneSpec(data)
		return spec, errors.Wrap(err, scene)
	}
	return prefabs.LoadSceneSpec(scene)
}

// simulate flies from the home pose to each panel and logs the eye at each
// quarter of the flight.
func simulate(spec prefabs.SceneSpec, cfg nav.FlightConfig, logger *zap.Logger) (int, error) {
	ctrl, err := nav.NewFlightController(cfg)
	if err != nil {
		return 0, err
	}

	ticks := 0
	for _, p := range spec.Panels {
		cam := nav.NewCamera(spec.Camera.Position.Vec(), spec.Camera.Fov, float64(common.BaseWidth)/float64(common.BaseHeight), spec.Camera.Near, spec.Camera.Far)
		cam.LookAt(spec.Camera.LookAt.Vec())

		if err := ctrl.Begin(&cam, nav.Point(p.Position.Vec())); err != nil {
			return 0, errors.Wrap(err, p.Name)
		}

		n, next := 0, 0.25
		for ctrl.Active() {
			ctrl.Advance(&cam)
			n++
			if t := float64(n) * cfg.Step; t >= next-1e-9 || !ctrl.Active() {
				logger.Debug("flight",
					zap.String("panel", p.Name),
					zap.String("id", entity.PanelID(spec.Name, p.Name).String()),
					zap.Int("tick", n),
					zap.Float64s("eye", cam.Eye[:]),
				)
				for next <= t {
					next += 0.25
				}
			}
		}
		ticks = n
	}
	return ticks, nil
}
