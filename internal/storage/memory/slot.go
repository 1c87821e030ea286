package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/mcoot/sosgame/internal/model"
	"github.com/mcoot/sosgame/internal/storage"
)

// Slot is an in-memory implementation of the save slot
type Slot struct {
	mu   sync.RWMutex
	data []byte
	set  bool
}

// New creates an empty in-memory slot
func New() *Slot {
	return &Slot{}
}

// Ensure Slot implements the interface
var _ storage.Slot = (*Slot)(nil)

func (s *Slot) Open(ctx context.Context) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return nil, model.ErrSlotEmpty
	}
	// Readers get their own copy so a later Replace cannot change what they see
	return io.NopCloser(bytes.NewReader(bytes.Clone(s.data))), nil
}

func (s *Slot) Replace(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = bytes.Clone(data)
	s.set = true
	return nil
}

// Contents returns a copy of the stored bytes and whether anything was saved
func (s *Slot) Contents() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bytes.Clone(s.data), s.set
}
