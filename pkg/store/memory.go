package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/circlepack/pkg/errors"
)

// MemoryStore keeps packings in process memory. Used in development and
// as the default backend when no MongoDB URI is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	packings map[string]Packing
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{packings: make(map[string]Packing)}
}

// Save stores a packing.
func (s *MemoryStore) Save(ctx context.Context, p Packing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packings[p.ID] = p
	return nil
}

// Get retrieves a packing by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (Packing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.packings[id]
	if !ok {
		return Packing{}, errors.New(errors.ErrCodeNotFound, "packing %s not found", id)
	}
	return p, nil
}

// List returns all packings, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]Packing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Packing, 0, len(s.packings))
	for _, p := range s.packings {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a packing by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.packings[id]; !ok {
		return errors.New(errors.ErrCodeNotFound, "packing %s not found", id)
	}
	delete(s.packings, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
