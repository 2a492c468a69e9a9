// Package search defines the retrieval collaborator contracts the core
// depends on. The physical index engines are external; the core only needs
// ordered rankings back.
package search

import (
	"context"

	"github.com/newsarena/factgraph/internal/model"
)

// LexicalIndex is the sparse (keyword) index contract.
type LexicalIndex interface {
	Search(ctx context.Context, query string, topN int) ([]model.Ranked, error)
}

// DenseIndex is the dense (semantic) index contract.
type DenseIndex interface {
	Search(ctx context.Context, query string, topN int) ([]model.Ranked, error)
}

// DocumentStore resolves fused document ids back to full documents.
type DocumentStore interface {
	Get(ctx context.Context, id string) (model.Document, error)
}
