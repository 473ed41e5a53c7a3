package save

import (
	"context"
	"fmt"
	"sync"
)

// Store persists snapshots keyed by slot.
type Store interface {
	// Save upserts snap into slot.
	Save(ctx context.Context, slot string, snap Snapshot) error
	// Load returns the snapshot in slot, or ErrNotFound.
	Load(ctx context.Context, slot string) (Snapshot, error)
}

// MemoryStore keeps encoded snapshots in process memory.
// It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, slot string, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.slots[slot] = data
	m.mu.Unlock()
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(ctx context.Context, slot string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	m.mu.RLock()
	data, ok := m.slots[slot]
	m.mu.RUnlock()
	if !ok {
		return Snapshot{}, fmt.Errorf("slot %q: %w", slot, ErrNotFound)
	}
	return Decode(data)
}
