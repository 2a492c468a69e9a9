// Package memstore is the in-memory graph store backend. Arenas are plain
// map entries, so isolation between sessions is structural: a read can only
// ever see the arena it names.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/newsarena/factgraph/internal/model"
)

// Store implements kgraph.Store in memory.
type Store struct {
	mu     sync.RWMutex
	arenas map[string][]model.Triplet
}

// New creates an empty in-memory graph store.
func New() *Store {
	return &Store{arenas: make(map[string][]model.Triplet)}
}

// CreateArena provisions an empty partition.
func (s *Store) CreateArena(_ context.Context, arenaID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.arenas[arenaID]; exists {
		return fmt.Errorf("arena %s already exists", arenaID)
	}
	s.arenas[arenaID] = nil
	return nil
}

// DropArena discards a partition and everything in it.
func (s *Store) DropArena(_ context.Context, arenaID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.arenas, arenaID)
	return nil
}

// AddTriplets appends to a partition.
func (s *Store) AddTriplets(_ context.Context, arenaID string, triplets []model.Triplet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.arenas[arenaID]
	if !ok {
		return fmt.Errorf("arena %s does not exist", arenaID)
	}
	s.arenas[arenaID] = append(existing, triplets...)
	return nil
}

// Triplets returns a partition's triplets filtered by label (empty for all).
func (s *Store) Triplets(_ context.Context, arenaID string, label model.SourceLabel) ([]model.Triplet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	existing, ok := s.arenas[arenaID]
	if !ok {
		return nil, fmt.Errorf("arena %s does not exist", arenaID)
	}
	out := make([]model.Triplet, 0, len(existing))
	for _, t := range existing {
		if label == "" || t.Label == label {
			out = append(out, t)
		}
	}
	return out, nil
}

// ArenaCount reports how many live arenas exist (test hook).
func (s *Store) ArenaCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.arenas)
}
