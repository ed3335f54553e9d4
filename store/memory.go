package store

import (
	"sync"

	"github.com/ZaguanLabs/gosocial"
)

// InMemoryStore is a thread-safe map. Values are lost on exit.
type InMemoryStore struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *InMemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set replaces the value stored under key.
func (s *InMemoryStore) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Len returns the number of keys.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Clear removes all keys.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]string)
}

// Entries returns a copy of all key-value pairs.
func (s *InMemoryStore) Entries() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]string, len(s.data))
	for k, v := range s.data {
		result[k] = v
	}
	return result
}

// Close is a no-op.
func (s *InMemoryStore) Close() error {
	return nil
}

var _ gosocial.KeyValueStore = (*InMemoryStore)(nil)
