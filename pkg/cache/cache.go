// Package cache stores parsed network models between runs.
//
// Parsing a large legacy file is cheap but not free, and the CLI is often
// run repeatedly on the same input (check, then convert, then plan). A
// [Cache] keyed by the hash of the input bytes and the parse options lets
// later runs skip the parser.
//
// Three implementations are provided:
//   - [FileCache] stores entries as files under a directory (CLI default)
//   - [RedisCache] stores entries in Redis, for shared or CI use
//   - [NullCache] stores nothing (caching disabled)
//
// Keys are built by a [Keyer] so callers never format keys by hand:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ModelKey(cache.Hash(input), cache.ModelKeyOpts{Format: "legacy"})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Entry lifetimes. Keys are content hashes, so entries never go stale;
// the TTLs only bound the size of a long-lived cache.
const (
	TTLModel = 7 * 24 * time.Hour
	TTLPlan  = 7 * 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	// ModelKey is the key of a parsed model.
	ModelKey(inputHash string, opts ModelKeyOpts) string

	// PlanKey is the key of an assembly plan for a parsed model.
	PlanKey(modelHash string) string
}

// ModelKeyOpts are the parse settings that change the parsed model.
type ModelKeyOpts struct {
	Format        string `json:"format"`
	StrictNumbers bool   `json:"strict_numbers"`
}

// DefaultKeyer builds keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default [Keyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ModelKey implements [Keyer].
func (DefaultKeyer) ModelKey(inputHash string, opts ModelKeyOpts) string {
	return hashKey("model", inputHash, opts)
}

// PlanKey implements [Keyer].
func (DefaultKeyer) PlanKey(modelHash string) string {
	return hashKey("plan", modelHash)
}
