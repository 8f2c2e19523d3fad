package store

import (
	"context"
	"sync"
)

// memoryMedium holds collections in a map. Used by tests and for
// throwaway local runs (MEDIUM_DRIVER=memory).
type memoryMedium struct {
	mu      sync.RWMutex
	records map[string]string
}

func NewMemoryMedium() Medium {
	return &memoryMedium{records: make(map[string]string)}
}

func (m *memoryMedium) Load(ctx context.Context, name string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.records[name]
	return payload, ok, nil
}

func (m *memoryMedium) Save(ctx context.Context, name, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[name] = payload
	return nil
}
