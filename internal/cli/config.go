package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/mcoot/sosgame/internal/factory"
	"github.com/mcoot/sosgame/internal/storage/file"
	redisstorage "github.com/mcoot/sosgame/internal/storage/redis"
)

// Config holds CLI configuration
type Config struct {
	SaveFile string
	Storage  string
	RedisURL string
	Server   string
	Output   string
	Verbose  bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		SaveFile: getEnvOrDefault("SOS_SAVE_FILE", file.DefaultPath),
		Storage:  getEnvOrDefault("SOS_STORAGE", factory.StorageTypeFile),
		RedisURL: getEnvOrDefault("SOS_REDIS_URL", redisstorage.DefaultConfig().URL),
		Server:   os.Getenv("SOS_SERVER"),
		Output:   "text",
		Verbose:  false,
	}
}

// Logger returns a text logger on w when verbose, otherwise a discarding one
func (c *Config) Logger(w io.Writer) *slog.Logger {
	if !c.Verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Factory returns the factory settings for a local game
func (c *Config) Factory(logger *slog.Logger) factory.Config {
	fc := factory.Config{
		Logger:      logger,
		StorageType: c.Storage,
		SavePath:    c.SaveFile,
	}
	if c.Storage == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		fc.RedisConfig = &redisCfg
	}
	return fc
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
