package store

import (
	"context"
	"officebot/internal/core/domain"
	"sync"
)

// Memory is a key/value store that lives as long as the process.
type Memory struct {
	values map[string][]byte
	mutex  sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, domain.ErrNotFound
	}

	return append([]byte(nil), value...), nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.values[key] = append([]byte(nil), value...)

	return nil
}
