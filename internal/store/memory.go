package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Store used by tests and by the engine's own test
// harness. Safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[Key]json.RawMessage
	notifier
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[Key]json.RawMessage)}
}

// Get decodes the value for key into v.
func (m *Memory) Get(key Key, v any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Set replaces the value for key and notifies subscribers.
func (m *Memory) Set(key Key, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	m.notify(key)
	return nil
}

// Subscribe registers fn for change notifications.
func (m *Memory) Subscribe(fn func(Key)) (cancel func()) {
	return m.subscribe(fn)
}
