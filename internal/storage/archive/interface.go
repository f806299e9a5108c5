// internal/storage/archive/interface.go
package archive

import "context"

// Storage is a flat key/blob store for archived backtest output
type Storage interface {
	// Put stores data under key, replacing any previous value
	Put(ctx context.Context, key string, data []byte) error

	// Get retrieves the data stored under key
	Get(ctx context.Context, key string) ([]byte, error)

	// List returns all keys with the given prefix
	List(ctx context.Context, prefix string) ([]string, error)
}
