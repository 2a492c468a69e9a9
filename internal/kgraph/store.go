// Package kgraph builds verification-session-scoped knowledge graphs and
// detects contradictions between verified coverage and a user's draft.
//
// Every session writes into its own store arena keyed by a generated
// session id. Reads are arena-scoped, so triplets from one session are
// structurally unreachable from any other — a forgotten teardown cannot
// leak into the next session's reads.
package kgraph

import (
	"context"

	"github.com/newsarena/factgraph/internal/model"
)

// Store is the graph-store collaborator contract. Implementations must
// guarantee hard isolation: triplets written under one arena id are never
// visible to reads under another.
type Store interface {
	// CreateArena provisions an empty scoped partition.
	CreateArena(ctx context.Context, arenaID string) error

	// DropArena discards a partition and every triplet in it.
	DropArena(ctx context.Context, arenaID string) error

	// AddTriplets appends labeled triplets to a partition.
	AddTriplets(ctx context.Context, arenaID string, triplets []model.Triplet) error

	// Triplets returns the partition's triplets carrying the given label,
	// or all of them when label is empty.
	Triplets(ctx context.Context, arenaID string, label model.SourceLabel) ([]model.Triplet, error)
}

// Extractor is the triplet-extraction collaborator contract. It may fail
// per document; the session records the failure and proceeds.
type Extractor interface {
	ExtractTriplets(ctx context.Context, text string) ([]model.RawTriple, error)
}
