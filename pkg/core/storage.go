package core

import "context"

// Persisted keys.
const (
	KeyNotes       = "notes"
	KeyKnownTags   = "myflomo-tags"
	KeyImages      = "myflomo-images"
	keyLegacyNotes = "myflomo-notes"
)

// Storage is the key-value port the Note Store persists through.
// Values are opaque bytes (JSON documents in practice).
type Storage interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Initializer is implemented by storages that need setup before use
// (e.g. create directories, migrate schema).
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Watchable is implemented by storages that can report changes made
// outside the current process.
type Watchable interface {
	// Watch emits an Event for every external change. The channel is closed
	// when ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}
