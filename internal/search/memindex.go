package search

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/newsarena/factgraph/internal/model"
)

// MemIndex is a small in-process index that satisfies both the lexical and
// dense contracts. It ranks by term overlap, which is enough for tests and
// the local demo backend; production deployments point the ports at real
// engines instead.
type MemIndex struct {
	mu   sync.RWMutex
	docs []model.Document
}

// NewMemIndex creates an empty index.
func NewMemIndex() *MemIndex {
	return &MemIndex{}
}

// Add indexes documents.
func (m *MemIndex) Add(docs ...model.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, docs...)
}

// Search ranks documents by the number of query terms they contain.
// Documents with zero overlap are omitted.
func (m *MemIndex) Search(_ context.Context, query string, topN int) ([]model.Ranked, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(query))
	type scored struct {
		id    string
		score int
	}
	var hits []scored
	for _, d := range m.docs {
		text := strings.ToLower(d.Text)
		n := 0
		for _, term := range terms {
			if strings.Contains(text, term) {
				n++
			}
		}
		if n > 0 {
			hits = append(hits, scored{id: d.ID, score: n})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].id < hits[j].id
	})
	if topN > 0 && len(hits) > topN {
		hits = hits[:topN]
	}

	out := make([]model.Ranked, len(hits))
	for i, h := range hits {
		out[i] = model.Ranked{DocumentID: h.id, Rank: i + 1}
	}
	return out, nil
}

// Get implements DocumentStore.
func (m *MemIndex) Get(_ context.Context, id string) (model.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Document{}, &NotFoundError{ID: id}
}

// NotFoundError reports a document id missing from the store.
type NotFoundError struct{ ID string }

func (e *NotFoundError) Error() string { return "document not found: " + e.ID }
