package redis

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/sosgame/internal/model"
	"github.com/mcoot/sosgame/internal/storage"
)

// Slot is a Redis-backed save slot. The whole saved game lives in one
// string key, so a SET replaces it atomically.
type Slot struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis slot
func New(cfg Config) (*Slot, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Slot{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis slot with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Slot {
	return &Slot{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Slot) Close() error {
	return s.client.Close()
}

// Ensure Slot implements the interface
var _ storage.Slot = (*Slot)(nil)

func (s *Slot) Open(ctx context.Context) (io.ReadCloser, error) {
	data, err := s.client.Get(ctx, slotKey(s.cfg.SlotName)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSlotEmpty
		}
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *Slot) Replace(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, slotKey(s.cfg.SlotName), data, s.cfg.SlotTTL).Err()
}
