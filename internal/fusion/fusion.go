// Package fusion merges a sparse lexical ranking and a dense semantic
// ranking into one ordered result list via reciprocal rank fusion.
package fusion

import (
	"sort"

	"github.com/newsarena/factgraph/internal/model"
)

// DefaultK is the standard RRF smoothing constant.
const DefaultK = 60

// Fuse combines two independently produced rankings. Each input is an
// ordered sequence of (document, rank) with ranks starting at 1; documents
// absent from a list contribute 0 for that list.
//
// score = Σ over lists 1/(rank + k)
//
// Output is sorted by descending score. Ties break by: presence in both
// lists, then lower minimum rank, then document identifier ascending.
// Two empty inputs fuse to an empty sequence, not an error.
func Fuse(sparse, dense []model.Ranked, k int) []model.RetrievalHit {
	if k <= 0 {
		k = DefaultK
	}

	byID := make(map[string]*model.RetrievalHit)

	for _, r := range sparse {
		if r.Rank < 1 {
			continue
		}
		h := hit(byID, r.DocumentID)
		h.SparseRank = r.Rank
		h.Score += 1.0 / float64(r.Rank+k)
	}

	for _, r := range dense {
		if r.Rank < 1 {
			continue
		}
		h := hit(byID, r.DocumentID)
		h.DenseRank = r.Rank
		h.Score += 1.0 / float64(r.Rank+k)
	}

	fused := make([]model.RetrievalHit, 0, len(byID))
	for _, h := range byID {
		fused = append(fused, *h)
	}

	sort.Slice(fused, func(i, j int) bool {
		a, b := fused[i], fused[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.InBothLists() != b.InBothLists() {
			return a.InBothLists()
		}
		if a.MinRank() != b.MinRank() {
			return a.MinRank() < b.MinRank()
		}
		return a.DocumentID < b.DocumentID
	})

	return fused
}

// Top truncates a fused result to at most n hits.
func Top(hits []model.RetrievalHit, n int) []model.RetrievalHit {
	if n <= 0 || n >= len(hits) {
		return hits
	}
	return hits[:n]
}

func hit(byID map[string]*model.RetrievalHit, id string) *model.RetrievalHit {
	if h, ok := byID[id]; ok {
		return h
	}
	h := &model.RetrievalHit{DocumentID: id}
	byID[id] = h
	return h
}
