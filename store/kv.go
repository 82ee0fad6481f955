package store

import "context"

// KV is the minimal persisted key-value interface the cache is built on.
// It mirrors a browser-extension local storage area, so the cache stays
// portable to any backing store.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Get with no keys returns every stored pair.
// - Set replaces the value wholesale; readers never observe partial writes.
// - Remove is idempotent; missing keys are not an error.
type KV interface {
	// Get returns the stored values for the given keys, omitting misses.
	// With no keys it returns all pairs.
	Get(ctx context.Context, keys ...string) (map[string][]byte, error)

	// Set stores one value under one key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the given keys.
	Remove(ctx context.Context, keys ...string) error

	// BytesInUse reports the approximate aggregate footprint of all
	// stored pairs.
	BytesInUse(ctx context.Context) (int64, error)
}
