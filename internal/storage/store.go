package storage

import "context"

// Store is a string-keyed JSON document store. All clinic state lives behind
// this interface so the domain services never touch a concrete backend.
//
// Get and Set are plain read/write with no transactional guarantees: two
// writers that load, modify and store the same key race, and the second
// write wins. The core accepts this (see the concurrency notes in the
// service docs) and never wraps the cycle in a lock.
type Store interface {
	// Get decodes the value stored at key into v. It returns false and a
	// nil error when the key is absent, leaving v untouched.
	Get(ctx context.Context, key string, v any) (bool, error)

	// Set encodes v as JSON and stores it at key, replacing any previous
	// value.
	Set(ctx context.Context, key string, v any) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
