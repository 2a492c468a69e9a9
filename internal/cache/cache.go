// Package cache memoizes triplet-extraction results. Extraction is the
// most expensive collaborator call in a session, and the same corpus
// documents recur across verifications.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from document or draft text. Keys are content
// addressed so re-ingested documents hit the same entry.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "factgraph:extract:v1:" + hex.EncodeToString(hash[:])
}
