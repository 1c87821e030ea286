package storage

import (
	"context"
	"io"
)

// Slot is a single durable location holding one saved game.
type Slot interface {
	// Open returns a reader over the slot's current contents.
	// Returns model.ErrSlotEmpty if nothing has been saved.
	Open(ctx context.Context) (io.ReadCloser, error)

	// Replace atomically swaps the slot's contents for data. Readers see
	// either the previous contents or data, never a mix of the two.
	Replace(ctx context.Context, data []byte) error
}
