package storage

import (
	"context"
	"sync"
)

// MemoryBridge keeps values in a map. Nothing survives the process.
type MemoryBridge struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryBridge() *MemoryBridge {
	return &MemoryBridge{values: make(map[string]string)}
}

func (m *MemoryBridge) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryBridge) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryBridge) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Clear drops every key.
func (m *MemoryBridge) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.values)
}

// Len reports how many keys are stored.
func (m *MemoryBridge) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

func (m *MemoryBridge) Close() error { return nil }
