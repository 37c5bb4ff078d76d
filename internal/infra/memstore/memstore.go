// Package memstore is an in-process StorageBackend for tests and ephemeral runs.
package memstore

import (
	"context"
	"sync"

	"github.com/aalvaropc/bangs/internal/ports"
)

type Store struct {
	mu      sync.RWMutex
	records map[string][]byte

	// FailSet, when set, is returned by Set. Used to simulate backend failures.
	FailSet error
}

var _ ports.StorageBackend = (*Store)(nil)

func New() *Store {
	return &Store{records: map[string][]byte{}}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	v, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSet != nil {
		return s.FailSet
	}
	s.records[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Clear(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(keys) == 0 {
		s.records = map[string][]byte{}
		return nil
	}
	for _, k := range keys {
		delete(s.records, k)
	}
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
