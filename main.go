package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/flyto/common"
	"github.com/milk9111/flyto/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	sceneName := flag.String("scene", prefabs.DefaultScene, "scene prefab in prefabs/ (file name)")
	tps := flag.Int("tps", ebiten.DefaultTPS, "ticks per second; a flight lasts 1/step ticks")
	flag.Parse()

	logger, err := common.NewLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("flyto")
	if *tps > 0 {
		ebiten.SetTPS(*tps)
	}

	game, err := NewGame(*sceneName, *debug, logger)
	if err != nil {
		logger.Fatal("create game", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("run game", zap.Error(err))
	}
}
