package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"spaceshooter/config"
	"spaceshooter/game"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults when empty)")
	logLevel := flag.String("log-level", "", "log level override: debug, info, warn or error")
	seed := flag.String("seed", "", "spawn seed; empty seeds from the clock")
	detector := flag.String("detector", "", "overlap detector override: space or grid")
	dumpConfig := flag.Bool("dump-config", false, "print the effective config as YAML and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *seed != "" {
		cfg.Seed = *seed
	}
	if *detector != "" {
		cfg.Collision.Detector = *detector
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *dumpConfig {
		if err := config.Write(os.Stdout, cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	g, err := game.NewGame(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("create game", zap.Error(err))
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizable(cfg.Window.Resizable)

	logger.Info("starting",
		zap.String("detector", cfg.Collision.Detector),
		zap.String("attacker_policy", cfg.Collision.AttackerPolicy),
	)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}
