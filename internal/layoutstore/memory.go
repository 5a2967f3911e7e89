package layoutstore

import (
	"context"
	"fmt"
	"sync"

	"griddeck/internal/dashboard"
)

// MemoryStore is an in-memory backend for tests and throwaway sessions.
// Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]dashboard.Layout
	order   []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]dashboard.Layout)}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, layoutID string) (dashboard.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.records[layoutID]
	if !ok {
		return dashboard.Layout{}, fmt.Errorf("layout %q: %w", layoutID, ErrNotFound)
	}
	return l.Clone(), nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, layout dashboard.Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[layout.ID]; !ok {
		s.order = append(s.order, layout.ID)
	}
	s.records[layout.ID] = layout.Clone()
	return nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context, ownerID string) ([]dashboard.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []dashboard.Layout
	for _, id := range s.order {
		l := s.records[id]
		if ownerID == "" || l.OwnerID == ownerID {
			out = append(out, l.Clone())
		}
	}
	return out, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, layoutID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[layoutID]; !ok {
		return nil
	}
	delete(s.records, layoutID)
	for i, id := range s.order {
		if id == layoutID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Saves returns how many records are stored, for test assertions.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
