// Package memory provides an in-memory archive store for tests.
package memory

import (
	"context"
	"sync"
)

// Store records saved artifacts in memory.
type Store struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// New creates an empty Store.
func New() *Store {
	return &Store{objects: make(map[string][]byte)}
}

// Save records the artifact bytes under objectName.
func (s *Store) Save(_ context.Context, objectName string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[objectName] = buf
	return nil
}

// Object returns the stored bytes for objectName, if present.
func (s *Store) Object(objectName string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[objectName]
	return data, ok
}

// Len reports how many artifacts have been saved.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// Close does nothing.
func (s *Store) Close() error { return nil }
