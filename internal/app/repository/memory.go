package repository

import (
	"context"
	"sync"

	"s2x/internal/app/model"
)

// MemoryStore keeps the ledger and preferences in process memory. It backs
// the client when no durable store can be opened.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []model.HistoryEntry
	values  map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Insert(_ context.Context, entry model.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.Artifacts = entry.Artifacts.Clone()
	next := make([]model.HistoryEntry, 0, min(len(m.entries)+1, model.HistoryCapacity))
	next = append(next, entry)
	next = append(next, m.entries...)
	if len(next) > model.HistoryCapacity {
		next = next[:model.HistoryCapacity]
	}
	m.entries = next
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]model.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.HistoryEntry, len(m.entries))
	for i, e := range m.entries {
		e.Artifacts = e.Artifacts.Clone()
		out[i] = e
	}
	return out, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.entries = nil
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) LoadValues(_ context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStore) SaveValues(_ context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }
