// Package keychain persists the tokens a vendor client holds between runs.
package keychain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds nothing.
var ErrNotFound = errors.New("keychain: item not found")

// Store is a small secure key/value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
