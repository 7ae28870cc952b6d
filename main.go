package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/templehub/common"
	"github.com/milk9111/templehub/logging"
	"go.uber.org/zap"
)

func main() {
	var cfg Config
	flag.StringVar(&cfg.PlaylistPath, "playlist", "", "playlist yaml/json file (defaults to the embedded playlist)")
	flag.StringVar(&cfg.StatePath, "state", "templehub-state.json", "file that remembers the last filter and item")
	flag.StringVar(&cfg.Root, "root", ".", "directory local media paths resolve against")
	flag.StringVar(&cfg.PrefabDir, "scene", "prefabs", "directory with prefab overrides, watched for edits")
	flag.StringVar(&cfg.Model, "model", "", "idol model URL (overrides $"+modelEnv+" and the scene prefab)")
	flag.StringVar(&cfg.SnapshotDir, "snapshots", "snapshots", "directory F2 snapshots are written to")
	flag.BoolVar(&cfg.Preview, "preview", false, "open the temple scene at start")
	flag.BoolVar(&cfg.Debug, "debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	if err := logging.Init(*logLevel, cfg.Debug); err != nil {
		log.Printf("logging: %v", err)
	}
	defer logging.Sync()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("templehub")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(cfg)
	if err != nil {
		logging.L().Fatal("start", zap.Error(err))
	}

	runErr := ebiten.RunGame(game)
	if err := game.Close(); err != nil {
		logging.L().Warn("shutdown", zap.Error(err))
	}
	if runErr != nil {
		logging.L().Fatal("run", zap.Error(runErr))
	}
}
