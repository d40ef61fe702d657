// Package cache stores inspection summaries so a repeat look at an
// unchanged file costs a key lookup instead of a full scan.
//
// Entries are opaque byte slices keyed by strings the Keyer builds from
// a file's kind and content fingerprint. Two backends are provided: a
// file cache for single-machine CLI use and a Redis cache for shared
// preview-server deployments. NullCache disables caching without
// changing any call sites.
package cache

import (
	"context"
	"time"
)

// TTLSummary is how long cached summaries live. Keys already embed the
// file's content fingerprint, so the TTL only bounds growth of the
// store, not staleness.
const TTLSummary = 7 * 24 * time.Hour

// Cache is the storage interface all backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
