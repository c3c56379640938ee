// Package cache stores planning results and rendered artifacts between runs.
//
// A [Cache] is a byte-oriented key/value store with per-entry TTL. Three
// backends are provided:
//   - [FileCache]: one JSON file per entry under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the HTTP server
//   - [NullCache]: never stores anything, used when caching is disabled
//
// Keys are produced by a [Keyer] so that every component hashes options the
// same way. [ScopedKeyer] prefixes keys for callers that share a backend.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get returns the value stored under key. The boolean is false on a miss
	// or when the entry has expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default entry lifetimes.
const (
	// PlanTTL bounds how long a grid, tower and path triple is reused.
	PlanTTL = 7 * 24 * time.Hour

	// ArtifactTTL bounds how long a rendered output is reused.
	ArtifactTTL = 24 * time.Hour
)
