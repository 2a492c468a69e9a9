package llm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/newsarena/factgraph/internal/cache"
	"github.com/newsarena/factgraph/internal/model"
)

// CachingExtractor memoizes triplet extraction by content hash. Corpus
// documents recur across verification sessions, and extraction is the most
// expensive collaborator call in the pipeline.
type CachingExtractor struct {
	inner interface {
		ExtractTriplets(ctx context.Context, text string) ([]model.RawTriple, error)
	}
	store cache.Cache
	ttl   time.Duration
}

// NewCachingExtractor wraps an extractor with a cache.
func NewCachingExtractor(inner *Client, store cache.Cache, ttl time.Duration) *CachingExtractor {
	return &CachingExtractor{inner: inner, store: store, ttl: ttl}
}

// ExtractTriplets returns cached triples when the exact text was extracted
// before; extraction failures are never cached.
func (e *CachingExtractor) ExtractTriplets(ctx context.Context, text string) ([]model.RawTriple, error) {
	key := cache.Key(text)
	if raw, ok := e.store.Get(key); ok {
		var triples []model.RawTriple
		if err := json.Unmarshal(raw, &triples); err == nil {
			return triples, nil
		}
		// Corrupt entry: drop it and re-extract.
		_ = e.store.Delete(key)
	}

	triples, err := e.inner.ExtractTriplets(ctx, text)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(triples); err == nil {
		_ = e.store.Set(key, raw, e.ttl)
	}
	return triples, nil
}
