// Package kv is the storage port behind the progress store: a flat string
// key-value namespace with synchronous get/set, the way a browser origin's
// localStorage behaves.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable wraps every backend failure. Callers treat it as fatal for the
// current visit.
var ErrUnavailable = errors.New("storage unavailable")

type Store interface {
	// Get returns ok=false when key has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
