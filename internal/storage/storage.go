// Package storage provides the durable key-value substrate the backend and
// the client session record persist into. Values are JSON-serializable;
// keys are opaque strings.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: key not found")

type Store interface {
	// Get unmarshals the value at key into v. Returns ErrNotFound when the
	// key is absent.
	Get(ctx context.Context, key string, v any) error
	// Put marshals v and stores it at key, replacing any prior value.
	Put(ctx context.Context, key string, v any) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
