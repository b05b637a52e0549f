// File: internal/kvstore/store.go
package kvstore

import "context"

// Entry is a single key/value pair returned by prefix listings.
type Entry struct {
	Key   string
	Value []byte
}

// Store is a namespaced, string-keyed persistence abstraction. Values are
// opaque byte slices; serialization is the caller's concern. Set must be
// atomic per key: a Get immediately following a successful Set for the same
// key observes the new value, and concurrent writers never leave a torn
// record behind (last write wins at key granularity).
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set durably writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// ListByPrefix returns all entries whose key starts with prefix.
	// Order is unspecified but stable within a single call.
	ListByPrefix(ctx context.Context, prefix string) ([]Entry, error)
}
