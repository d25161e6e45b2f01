// Package cache provides caching for dimensioning pass results.
//
// Running the full pass over a large document is cheap but not free, and
// API deployments see the same document-view-settings triple repeatedly.
// The cache stores serialized pass results keyed by content hashes, so a
// repeated request is a single lookup instead of a recomputation.
//
// # Backends
//
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: disabled caching
//
// # Keys
//
// Keys are derived from content, never from file paths or request ids:
// the same document at two paths hits the same entry, and any edit to
// geometry or settings produces a different key.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes per artifact type.
const (
	// TTLPass bounds how long a pass result is served without recompute.
	TTLPass = 24 * time.Hour

	// TTLDocument bounds how long a parsed document snapshot is kept.
	TTLDocument = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PassKeyOpts carries the inputs that change a pass result for a fixed
// document and view.
type PassKeyOpts struct {
	SettingsHash string // hash of the effective settings
	Interactive  bool   // pick-line placement bypasses the shared key space
}

// Keyer generates cache keys for the different cached artifacts.
type Keyer interface {
	// PassKey generates a key for a full dimensioning pass result.
	PassKey(docHash, viewID string, opts PassKeyOpts) string

	// DocumentKey generates a key for a parsed document snapshot.
	DocumentKey(docHash string) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PassKey generates a key for a pass result.
func (k *DefaultKeyer) PassKey(docHash, viewID string, opts PassKeyOpts) string {
	return hashKey("pass", docHash, viewID, opts)
}

// DocumentKey generates a key for a parsed document snapshot.
func (k *DefaultKeyer) DocumentKey(docHash string) string {
	return "doc:" + docHash
}
