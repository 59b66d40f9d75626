package prefs

import "sync"

// MemoryStore keeps everything in process. Saved values survive until the
// store is dropped.
type MemoryStore struct {
	*buffered
	saved *memoryBackend
}

type memoryBackend struct {
	mu     sync.Mutex
	values map[string]string
	saves  int
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	mb := &memoryBackend{values: make(map[string]string)}
	return &MemoryStore{buffered: newBuffered(mb), saved: mb}
}

// Saves reports how many times Save flushed pending values.
func (m *MemoryStore) Saves() int {
	m.saved.mu.Lock()
	defer m.saved.mu.Unlock()
	return m.saved.saves
}

// Saved returns a copy of the durable values.
func (m *MemoryStore) Saved() map[string]string {
	m.saved.mu.Lock()
	defer m.saved.mu.Unlock()
	out := make(map[string]string, len(m.saved.values))
	for k, v := range m.saved.values {
		out[k] = v
	}
	return out
}

func (mb *memoryBackend) name() string { return "memory" }

func (mb *memoryBackend) load(key string) (string, bool, error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	v, ok := mb.values[key]
	return v, ok, nil
}

func (mb *memoryBackend) flush(values map[string]string) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	for k, v := range values {
		mb.values[k] = v
	}
	mb.saves++
	return nil
}
