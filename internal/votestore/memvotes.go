package votestore

import (
	"context"
	"sync"

	"github.com/newsarena/factgraph/internal/model"
)

// MemStore is the in-memory vote store.
type MemStore struct {
	mu    sync.RWMutex
	votes map[string][]model.Vote // keyed by issue id
}

// NewMemStore creates an empty in-memory vote store.
func NewMemStore() *MemStore {
	return &MemStore{votes: make(map[string][]model.Vote)}
}

// Append records one vote.
func (s *MemStore) Append(_ context.Context, vote model.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[vote.IssueID] = append(s.votes[vote.IssueID], vote)
	return nil
}

// ByIssue returns a copy of the issue's votes.
func (s *MemStore) ByIssue(_ context.Context, issueID string) ([]model.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.votes[issueID]
	out := make([]model.Vote, len(src))
	copy(out, src)
	return out, nil
}

// TotalsByCluster groups the issue's vote weight by cluster label.
func (s *MemStore) TotalsByCluster(_ context.Context, issueID string) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	totals := make(map[string]float64)
	for _, v := range s.votes[issueID] {
		totals[v.Cluster] += v.Weight
	}
	return totals, nil
}
