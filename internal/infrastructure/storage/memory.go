// Package storage holds the local ports.Storage implementations: an
// in-memory map for tests and a directory of JSON files for the CLI.
package storage

import (
	"context"
	"sync"

	"github.com/99minutos/order-portal/internal/core/domain"
)

// Memory is a process-local ports.Storage.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
	// FailSet, when non-nil, is returned by every Set. Tests use it to
	// simulate a full disk.
	FailSet error
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return m.FailSet
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}
