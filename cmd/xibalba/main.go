package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/todo-knk/xibalba/internal/data"
	"github.com/todo-knk/xibalba/internal/engine"
	"github.com/todo-knk/xibalba/internal/tui"
	"github.com/todo-knk/xibalba/internal/version"
	"github.com/todo-knk/xibalba/pkg/logger"
)

func main() {
	var (
		seed       int64
		configPath string
		dataDir    string
		watch      bool
		logPath    string
	)
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.StringVar(&configPath, "config", "", "Path to YAML config")
	flag.StringVar(&dataDir, "data", "", "Directory with enemy/item YAML overrides")
	flag.BoolVar(&watch, "watch", false, "Reload data directory on change")
	flag.StringVar(&logPath, "log", "xibalba.log", "Log file (the terminal is taken by the game)")
	flag.Parse()

	if err := run(seed, configPath, dataDir, watch, logPath); err != nil {
		fmt.Fprintln(os.Stderr, "xibalba:", err)
		os.Exit(1)
	}
}

func run(seed int64, configPath, dataDir string, watch bool, logPath string) error {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger.InitWithOutput(logFile)

	log := logger.Component("main")
	log.Info(version.String())

	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	cfg.Watch = cfg.Watch || watch

	catalog, err := data.LoadCatalog(cfg.DataDir)
	if err != nil {
		return err
	}
	if cfg.Watch && cfg.DataDir != "" {
		watcher, err := data.WatchCatalog(catalog, cfg.DataDir, func(err error) {
			if err != nil {
				log.WithError(err).Warn("data reload failed")
				return
			}
			log.Info("data reloaded")
		})
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	missiles := tui.NewProjectiles()
	game, err := engine.NewGame(cfg, engine.WithCatalog(catalog), engine.WithAnimator(missiles))
	if err != nil {
		return err
	}
	log.WithField("seed", cfg.Seed).Info("game started")

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.NewApp(screen, game, missiles).Run(ctx)
}
