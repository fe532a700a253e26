// Package metadata is the CLI's persisted key/value storage. It plays the
// role a browser's localStorage plays for a web front-end: string values
// under string keys, surviving restarts.
package metadata

import (
	"context"
)

type Repository interface {
	// GetItem returns the value stored under key; ok is false when absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
