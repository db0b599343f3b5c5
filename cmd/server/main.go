package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/agent"
	"github.com/todo-knk/xibalba/internal/data"
	"github.com/todo-knk/xibalba/internal/engine"
	"github.com/todo-knk/xibalba/internal/infrastructure/storage"
	"github.com/todo-knk/xibalba/internal/server"
	"github.com/todo-knk/xibalba/internal/version"
	"github.com/todo-knk/xibalba/pkg/logger"
	"github.com/todo-knk/xibalba/pkg/utils"
)

// EnvPort — порт HTTP сервера.
const EnvPort = "XIBALBA_PORT"

func init() {
	logger.Init()
}

func main() {
	var (
		seed       int64
		configPath string
		dataDir    string
		watch      bool
		replayPath string
		recordDir  string
		withBot    bool
	)
	// 0 значит случайное зерно из конфига
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.StringVar(&configPath, "config", "", "Path to YAML config")
	flag.StringVar(&dataDir, "data", "", "Directory with enemy/item YAML overrides")
	flag.BoolVar(&watch, "watch", false, "Reload data directory on change")
	flag.StringVar(&replayPath, "replay", "", "Path to "+storage.Extension+" replay file to simulate")
	flag.StringVar(&recordDir, "record", "replays", "Directory for replay files (empty disables recording)")
	flag.BoolVar(&withBot, "bot", false, "Let the built-in bot play; websocket clients only watch")
	flag.Parse()

	log := logger.Component("main")
	log.Info("Starting Xibalba...")
	log.Info(version.String())

	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		log.WithError(err).Fatal("invalid config")
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
		log.WithError(err).Fatal("failed to load data")
	}

	if replayPath != "" {
		runReplay(cfg, catalog, replayPath)
		return
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
			log.WithError(err).Fatal("failed to watch data directory")
		}
		defer watcher.Close()
	}

	log.WithField("seed", cfg.Seed).Info("master seed")
	game, err := engine.NewGame(cfg, engine.WithCatalog(catalog))
	if err != nil {
		log.WithError(err).Fatal("failed to create game")
	}

	var opts []engine.ServiceOption
	if recordDir != "" {
		recorder, err := storage.NewReplayService(recordDir)
		if err != nil {
			log.WithError(err).Fatal("failed to prepare replay directory")
		}
		opts = append(opts, engine.WithRecorder(recorder))
	}
	svc := engine.NewService(game, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serviceDone := make(chan error, 1)
	go func() { serviceDone <- svc.Run(ctx) }()

	port := os.Getenv(EnvPort)
	if port == "" {
		port = "8080"
	}
	srv := server.New(svc, port)

	if withBot {
		id := "bot-" + utils.GenerateID()
		srv.Reserve(id)
		bot := agent.NewBot(id, svc, svc.Hub.Register(id), cfg.Seed)
		go bot.Run(ctx)
	}

	go func() {
		if err := srv.Run(); err != nil {
			log.WithError(err).Fatal("server start error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}

	// отмена ctx сохраняет запись партии
	cancel()
	if err := <-serviceDone; err != nil {
		log.WithError(err).Error("game service stopped with error")
	}
	log.Info("Done.")
}

func runReplay(cfg engine.Config, catalog *data.Catalog, path string) {
	log := logger.Component("replay")
	log.Info("Mode: replay simulation")

	session, err := storage.LoadFile(path)
	if err != nil {
		log.WithError(err).Fatal("failed to load replay")
	}
	game, err := engine.Replay(context.Background(), cfg, session, engine.WithCatalog(catalog))
	if err != nil {
		log.WithError(err).Fatal("replay failed")
	}
	log.WithFields(logrus.Fields{
		"seed":    session.Seed,
		"actions": len(session.Actions),
		"turn":    game.World().Turn,
		"depth":   game.Depth(),
		"over":    game.GameOver(),
	}).Info("replay finished")
}
