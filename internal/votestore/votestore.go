// Package votestore persists community votes on published issues. The
// store is append-only: consensus scores are always recomputed from the
// votes, never stored.
package votestore

import (
	"context"

	"github.com/newsarena/factgraph/internal/model"
)

// Store is the vote-store collaborator contract.
type Store interface {
	// Append records one vote. Votes are never updated or deleted.
	Append(ctx context.Context, vote model.Vote) error

	// ByIssue returns every vote for an issue.
	ByIssue(ctx context.Context, issueID string) ([]model.Vote, error)

	// TotalsByCluster returns the issue's vote weight grouped by cluster.
	TotalsByCluster(ctx context.Context, issueID string) (map[string]float64, error)
}
