package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/flowgrid/pkg/domain"
)

// Store keeps grid states in a map guarded by a RWMutex.
type Store struct {
	mu    sync.RWMutex
	grids map[string]*domain.State
}

func NewStore() *Store {
	return &Store{grids: map[string]*domain.State{}}
}

// Save keeps a snapshot so that later reassignment by the caller is not seen.
func (s *Store) Save(_ context.Context, gridID string, state *domain.State) error {
	snap := state.Snapshot()
	s.mu.Lock()
	s.grids[gridID] = snap
	s.mu.Unlock()
	return nil
}

func (s *Store) Load(_ context.Context, gridID string) (*domain.State, error) {
	s.mu.RLock()
	state, ok := s.grids[gridID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrGridNotFound
	}
	return state.Snapshot(), nil
}

func (s *Store) Delete(_ context.Context, gridID string) error {
	s.mu.Lock()
	delete(s.grids, gridID)
	s.mu.Unlock()
	return nil
}

// List returns the stored grid ids in lexical order.
func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.grids)), nil
}
