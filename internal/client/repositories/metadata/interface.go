// Package metadata is the client's small key-value store, backed by the local
// sqlite database. It holds session state that must survive restarts, such as
// the access token.
package metadata

import "context"

type Repository interface {
	// Get returns the stored value, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Clear wipes every key.
	Clear(ctx context.Context) error
}
