package kv

import (
	"sync"
)

// memoryStore is an in-memory Store, used by tests and ephemeral runs
type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() Store {
	return &memoryStore{
		data: make(map[string][]byte),
	}
}

func (s *memoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

func (s *memoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *memoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

func (s *memoryStore) Usage() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for k, v := range s.data {
		total += int64(len(k)) + int64(len(v))
	}
	return total, nil
}

func (s *memoryStore) Close() error {
	return nil
}
