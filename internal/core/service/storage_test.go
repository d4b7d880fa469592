package service_test

import (
	"context"
	"errors"
	"sync"

	"github.com/niksmo/storefront/internal/core/port"
)

var errStorage = errors.New("storage unavailable")

type memStorage struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	loadErr error
	saveErr error
	saves   int
	deletes int
}

func newMemStorage() *memStorage {
	return &memStorage{blobs: make(map[string][]byte)}
}

func (s *memStorage) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	b, ok := s.blobs[key]
	if !ok {
		return nil, port.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (s *memStorage) Save(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.blobs[key] = append([]byte(nil), blob...)
	return nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[key]; !ok {
		return port.ErrNotFound
	}
	s.deletes++
	delete(s.blobs, key)
	return nil
}

func (s *memStorage) raw(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[key]
	return b, ok
}
