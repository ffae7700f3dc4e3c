// Package metadata is the CLI's named-value table. It holds the saved
// session and anything else that must outlive one command.
package metadata

import "context"

// Repository reads and writes values by key. Missing keys are never an
// error: Get returns nil and GetMany leaves them out of the map.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
