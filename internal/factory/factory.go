package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/sosgame/internal/dependencies/random"
	"github.com/mcoot/sosgame/internal/services/game"
	"github.com/mcoot/sosgame/internal/storage"
	"github.com/mcoot/sosgame/internal/storage/file"
	"github.com/mcoot/sosgame/internal/storage/memory"
	redisstorage "github.com/mcoot/sosgame/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Slot   storage.Slot
	Stream *storage.Stream

	// External dependencies
	Random random.Random

	// Services
	GameController *game.Controller

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the save slot backend ("file", "memory" or "redis")
	// If empty, defaults to "file"
	StorageType string
	// SavePath is the save file location for the file backend
	// If empty, defaults to file.DefaultPath
	SavePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var slot storage.Slot
	var closers []io.Closer

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	switch storageType {
	case StorageTypeFile:
		slot = file.New(cfg.SavePath, logger)
	case StorageTypeMemory:
		slot = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisSlot, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		slot = redisSlot
		closers = append(closers, redisSlot)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'file', 'memory' or 'redis'", storageType)
	}

	app := newWithDependencies(slot, random.New(), logger)
	app.closers = append(app.closers, closers...)
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(slot storage.Slot, rnd random.Random, logger *slog.Logger) *App {
	stream := storage.NewStream(slot, logger)
	gameController := game.NewController(stream, rnd, logger)

	return &App{
		Slot:           slot,
		Stream:         stream,
		Random:         rnd,
		GameController: gameController,
		closers:        []io.Closer{gameController},
	}
}

// Close releases the save slot and any backend connections
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
