// Package cache stores analysis results and rendered artifacts.
//
// A [Cache] is a byte-oriented key/value store with per-entry TTLs. Three
// backends ship with the package:
//
//   - [FileCache]: one JSON file per entry under a local directory (CLI)
//   - [RedisCache]: a shared Redis instance (HTTP server deployments)
//   - [NullCache]: stores nothing (--no-cache, tests)
//
// Keys are produced by a [Keyer] so that every cache user agrees on the
// layout. [NewScopedKeyer] prefixes keys for isolated namespaces.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized results.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default time-to-live per entry kind.
const (
	TTLAnalysis = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
