package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/mcoot/sosgame/internal/api"
	"github.com/mcoot/sosgame/internal/factory"
	redisstorage "github.com/mcoot/sosgame/internal/storage/redis"
)

// Config is the server configuration, read from an optional YAML file and
// then overridden by SOS_* environment variables
type Config struct {
	LogLevel string  `yaml:"log-level" env:"SOS_LOG_LEVEL" env-default:"info"`
	HTTP     HTTP    `yaml:"http"`
	Storage  Storage `yaml:"storage"`
}

type HTTP struct {
	Host            string        `yaml:"host" env:"SOS_HTTP_HOST" env-default:""`
	Port            int           `yaml:"port" env:"SOS_HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read-timeout" env:"SOS_HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write-timeout" env:"SOS_HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"SOS_HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

type Storage struct {
	Type     string        `yaml:"type" env:"SOS_STORAGE" env-default:"file"`
	SavePath string        `yaml:"save-path" env:"SOS_SAVE_FILE" env-default:"files/gamestate.csv"`
	RedisURL string        `yaml:"redis-url" env:"SOS_REDIS_URL" env-default:"redis://localhost:6379"`
	SlotName string        `yaml:"slot-name" env:"SOS_REDIS_SLOT" env-default:"default"`
	SlotTTL  time.Duration `yaml:"slot-ttl" env:"SOS_REDIS_SLOT_TTL" env-default:"0s"`
}

// Load reads the configuration. An empty path, or a path to a file that
// does not exist, falls back to the environment alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("unable to load config file: %w", err)
			}
			return cfg, cfg.validate()
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to stat config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.Storage.Type {
	case factory.StorageTypeFile, factory.StorageTypeMemory, factory.StorageTypeRedis:
	default:
		return fmt.Errorf("invalid storage type %q", c.Storage.Type)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel into a slog level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Server returns the HTTP server settings
func (c *Config) Server() api.ServerConfig {
	return api.ServerConfig{
		Host:            c.HTTP.Host,
		Port:            c.HTTP.Port,
		ReadTimeout:     c.HTTP.ReadTimeout,
		WriteTimeout:    c.HTTP.WriteTimeout,
		ShutdownTimeout: c.HTTP.ShutdownTimeout,
	}
}

// Factory returns the application factory settings
func (c *Config) Factory(logger *slog.Logger) factory.Config {
	fc := factory.Config{
		Logger:      logger,
		StorageType: c.Storage.Type,
		SavePath:    c.Storage.SavePath,
	}
	if c.Storage.Type == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.Storage.RedisURL
		redisCfg.SlotName = c.Storage.SlotName
		redisCfg.SlotTTL = c.Storage.SlotTTL
		fc.RedisConfig = &redisCfg
	}
	return fc
}
