// Package storage provides the key-value media the recipe collection is
// persisted in. Every medium stores opaque byte blobs under string keys; the
// recipe store above it always reads and writes the whole blob.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned by Get when nothing is stored under the key.
	ErrKeyNotFound = errors.New("storage: key not found")
	// ErrQuotaExceeded is returned by Set when the value does not fit the medium.
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// KV is a single-writer key-value persistence region.
type KV interface {
	// Get returns the value stored under key or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}
