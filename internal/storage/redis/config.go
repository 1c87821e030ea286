package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// SlotName distinguishes save slots sharing one Redis instance
	SlotName string

	// SlotTTL expires the saved game after this long; zero keeps it forever
	SlotTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     4,
		MinIdleConns: 1,
		SlotName:     "default",
		SlotTTL:      0,
	}
}
