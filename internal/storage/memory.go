package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Store. Each instance is independent, which is what
// makes per-test isolation possible.
type Memory struct {
	mu     sync.RWMutex
	values map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]json.RawMessage)}
}

func (m *Memory) Get(ctx context.Context, key string, v any) error {
	m.mu.RLock()
	raw, ok := m.values[key]
	m.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode value at %q: %w", key, err)
	}
	return nil
}

func (m *Memory) Put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}

	m.mu.Lock()
	m.values[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

var _ Store = (*Memory)(nil)
