package playback

import (
	"context"
	"sync"
)

// Store keeps one Snapshot per session key. Absent keys load as NewSnapshot.
type Store interface {
	Load(ctx context.Context, key string) (Snapshot, error)
	// Update applies fn atomically and returns the stored result.
	Update(ctx context.Context, key string, fn func(Snapshot) Snapshot) (Snapshot, error)
}

type MemoryStore struct {
	mu        sync.Mutex
	snapshots map[string]Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]Snapshot)}
}

func (m *MemoryStore) Load(_ context.Context, key string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(key), nil
}

func (m *MemoryStore) Update(_ context.Context, key string, fn func(Snapshot) Snapshot) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := fn(m.get(key))
	m.snapshots[key] = s
	return s, nil
}

// Delete forgets key's snapshot; the next Load starts from defaults.
func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	delete(m.snapshots, key)
	m.mu.Unlock()
}

// Len is the number of stored snapshots.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snapshots)
}

func (m *MemoryStore) get(key string) Snapshot {
	if s, ok := m.snapshots[key]; ok {
		return s
	}
	return NewSnapshot()
}
