// Package cache stores computed layouts and rendered artifacts by content
// key.
//
// # Backends
//
// [Cache] has four implementations:
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: persistent cache with a TTL index
//   - [NullCache]: stores nothing, used with --no-cache
//
// # Keys
//
// A [Keyer] derives keys from content hashes and the options that affect
// the cached value, so identical requests hit the same entry regardless of
// backend. [ScopedKeyer] prefixes every key to isolate namespaces.
package cache

import (
	"context"
	"time"
)

// TTLs for cached values.
const (
	// TTLLayout is how long a computed layout stays cached.
	TTLLayout = 30 * 24 * time.Hour

	// TTLArtifact is how long a rendered artifact stays cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with optional expiration. Implementations must be
// safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or false on a miss. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
