package ports

import "context"

// KeyValueStore is the durable string-keyed byte store behind the persistence adapter.
// Implementations must be safe for concurrent use.
type KeyValueStore interface {
	// Get returns the stored value. found is false when the key was never written
	// (or has been removed).
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set replaces the value stored under key
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the underlying resources
	Close() error
}
