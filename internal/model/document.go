package model

import "time"

// Document is an article previously ingested into the corpus.
// Immutable once ingested; owned by the external corpus store.
type Document struct {
	ID          string    `json:"id"`                     // Corpus-wide identifier
	Text        string    `json:"text"`                   // Full article text
	Source      string    `json:"source,omitempty"`       // Publisher / feed name
	Section     string    `json:"section,omitempty"`      // Section (politics, economy, ...)
	PublishedAt time.Time `json:"published_at,omitempty"` // Original publish time
}

// Ranked is one entry of an ordered ranking produced by a lexical or
// dense index. Rank positions start at 1.
type Ranked struct {
	DocumentID string `json:"document_id"`
	Rank       int    `json:"rank"`
}

// RetrievalHit is a fused retrieval result for one document.
// SparseRank/DenseRank are 0 when the document was absent from that list.
type RetrievalHit struct {
	DocumentID string  `json:"document_id"`
	SparseRank int     `json:"sparse_rank,omitempty"`
	DenseRank  int     `json:"dense_rank,omitempty"`
	Score      float64 `json:"score"` // Fused RRF score
}

// InBothLists reports whether the document appeared in both input rankings.
func (h RetrievalHit) InBothLists() bool {
	return h.SparseRank > 0 && h.DenseRank > 0
}

// MinRank returns the lower of the two rank positions, ignoring absences.
func (h RetrievalHit) MinRank() int {
	switch {
	case h.SparseRank > 0 && h.DenseRank > 0:
		if h.SparseRank < h.DenseRank {
			return h.SparseRank
		}
		return h.DenseRank
	case h.SparseRank > 0:
		return h.SparseRank
	case h.DenseRank > 0:
		return h.DenseRank
	default:
		return 0
	}
}
