package store

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory KV implementation. It backs tests and ephemeral
// caches that do not need to survive a restart.
type MemoryKV struct {
	mu    sync.RWMutex
	pairs map[string][]byte
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{pairs: make(map[string][]byte)}
}

// Get returns the stored values for the given keys, or all pairs when no
// keys are given.
func (m *MemoryKV) Get(_ context.Context, keys ...string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][]byte)
	if len(keys) == 0 {
		for k, v := range m.pairs {
			out[k] = append([]byte(nil), v...)
		}
		return out, nil
	}
	for _, k := range keys {
		if v, ok := m.pairs[k]; ok {
			out[k] = append([]byte(nil), v...)
		}
	}
	return out, nil
}

// Set stores one value under one key.
func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.pairs[key] = append([]byte(nil), value...)
	m.mu.Unlock()
	return nil
}

// Remove deletes the given keys. Idempotent.
func (m *MemoryKV) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.pairs, k)
	}
	m.mu.Unlock()
	return nil
}

// BytesInUse reports the aggregate size of all keys and values.
func (m *MemoryKV) BytesInUse(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total int64
	for k, v := range m.pairs {
		total += int64(len(k) + len(v))
	}
	return total, nil
}

// Ensure MemoryKV implements KV
var _ KV = (*MemoryKV)(nil)
