package storage

import (
	"context"
	"sync"
)

// MemoryRepository is a non-durable Repository used by tests and by
// ephemeral runs where persistence is not wanted.
type MemoryRepository struct {
	mu   sync.Mutex
	data map[Kind][]byte
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{data: make(map[Kind][]byte)}
}

// Seed pre-populates a kind, e.g. to simulate previously persisted or
// corrupt state.
func (m *MemoryRepository) Seed(kind Kind, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[kind] = data
}

func (m *MemoryRepository) Load(_ context.Context, kind Kind) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[kind], nil
}

func (m *MemoryRepository) Save(_ context.Context, kind Kind, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.data[kind] = cp
	return nil
}

func (m *MemoryRepository) Close() error {
	return nil
}
