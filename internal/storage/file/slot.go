package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/mcoot/sosgame/internal/model"
	"github.com/mcoot/sosgame/internal/storage"
)

// DefaultPath is where saved games live unless configured otherwise
const DefaultPath = "files/gamestate.csv"

// Slot stores the saved game in a single file on disk
type Slot struct {
	path   string
	logger *slog.Logger
}

// New creates a file slot at the given path. The file and its directory
// are created on first Replace.
func New(path string, logger *slog.Logger) *Slot {
	if path == "" {
		path = DefaultPath
	}
	return &Slot{
		path:   path,
		logger: logger,
	}
}

// Ensure Slot implements the interface
var _ storage.Slot = (*Slot)(nil)

// Path returns the location of the backing file
func (s *Slot) Path() string {
	return s.path
}

func (s *Slot) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.ErrSlotEmpty
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	return f, nil
}

// Replace writes data to a temporary file next to the slot and renames it
// over the slot once fully written and synced
func (s *Slot) Replace(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}

	if err := renameio.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	s.logger.Debug("save slot replaced",
		slog.String("path", s.path),
		slog.Int("bytes", len(data)),
	)
	return nil
}
