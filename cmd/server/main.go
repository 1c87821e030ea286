package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/sosgame/internal/api"
	"github.com/mcoot/sosgame/internal/config"
	"github.com/mcoot/sosgame/internal/factory"
)

func main() {
	configPath := flag.String("config", "config.yml", "Path to an optional YAML config file")
	flag.Parse()

	os.Exit(run(*configPath))
}

// run serves the API until a shutdown signal and returns the process exit
// code. Deferred cleanup runs before the caller exits.
func run(configPath string) int {
	// Load configuration before logging so the level can be applied
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		return 1
	}
	level, _ := cfg.Level()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Create application factory
	app, err := factory.New(cfg.Factory(logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to release application resources", slog.String("error", err.Error()))
		}
	}()

	// Resume the saved game if there is one
	if _, err := app.GameController.LoadGame(context.Background()); err != nil {
		logger.Warn("could not resume saved game", slog.String("error", err.Error()))
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
	})

	// Create server
	server := api.NewServer(apiRouter, cfg.Server(), logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.Storage.Type),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return 1
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return 1
		}
	}

	logger.Info("server stopped")
	return 0
}
