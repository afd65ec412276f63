// Package cache stores fingerprint search results between runs.
//
// The finder is a brute-force search, so repeated runs over the same
// articles reuse earlier results. Entries are keyed by a SHA-256 of the
// candidate set and minimum length, see [Keyer].
//
//	c, err := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().FingerprintKey(candidates, 2)
//	data, hit, err := c.Get(ctx, key)
//
// [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// TTLFingerprint is how long a fingerprint result stays valid. Results are
// pure functions of their key, so the TTL only bounds disk usage.
const TTLFingerprint = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources.
	Close() error
}
