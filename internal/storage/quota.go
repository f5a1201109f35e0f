package storage

import (
	"context"
	"fmt"
)

// Quota rejects writes larger than a fixed number of bytes, mimicking the
// bounded capacity of client-local storage.
type Quota struct {
	next     KV
	maxBytes int
}

// WithQuota wraps kv with a byte quota. A non-positive maxBytes disables it.
func WithQuota(kv KV, maxBytes int) KV {
	if maxBytes <= 0 {
		return kv
	}
	return &Quota{next: kv, maxBytes: maxBytes}
}

func (q *Quota) Get(ctx context.Context, key string) ([]byte, error) {
	return q.next.Get(ctx, key)
}

func (q *Quota) Set(ctx context.Context, key string, value []byte) error {
	if len(value) > q.maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrQuotaExceeded, len(value), q.maxBytes)
	}
	return q.next.Set(ctx, key, value)
}
