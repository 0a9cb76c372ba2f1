// Package memory provides an in-process core.Storage. Nothing survives the
// process; it backs tests and the "memory" adapter.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/myflomo/pkg/core"
)

// Storage implements core.Storage over a map.
type Storage struct {
	mu     sync.RWMutex
	data   map[string][]byte
	writes int

	// FailWrites makes every Set and Remove fail with this error when non-nil.
	FailWrites error
}

// NewStorage creates an empty Storage.
func NewStorage() *Storage {
	return &Storage{data: make(map[string][]byte)}
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	return slices.Clone(v), nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.data[key] = slices.Clone(value)
	s.writes++
	return nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	delete(s.data, key)
	s.writes++
	return nil
}

// Writes returns how many successful Set/Remove calls were made.
func (s *Storage) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// StorageState exposes internal state for observability.
type StorageState struct {
	Keys   []string `json:"keys"`
	Writes int      `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return StorageState{Keys: keys, Writes: s.writes}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory"
}

var _ core.Storage = (*Storage)(nil)
var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
