package kv

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Apply(_ context.Context, b *Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range b.ops {
		if o.del {
			delete(s.entries, o.key)
			continue
		}
		s.entries[o.key] = append([]byte(nil), o.value...)
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }
