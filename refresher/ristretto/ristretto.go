// Package ristretto provides a Refresher backed by a shared in-process
// ristretto cache. The cell re-reads its key on demand; whoever owns the
// ristretto instance keeps the key populated.
package ristretto

import (
	"context"
	"errors"
	"fmt"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/ttlcell"
	"github.com/unkn0wn-root/ttlcell/codec"
)

var (
	ErrNilCache = errors.New("ristretto refresher: nil cache")
	ErrNoKey    = errors.New("ristretto refresher: key is required")
	ErrNilCodec = errors.New("ristretto refresher: nil codec")

	// ErrKeyMissing is returned from Refresh on a ristretto miss (absent or
	// evicted entry).
	ErrKeyMissing = errors.New("ristretto refresher: key missing")

	// ErrNotBytes is returned when the entry under the key is not []byte.
	// The refresher does not own the cache, so it reports instead of
	// deleting the foreign entry.
	ErrNotBytes = errors.New("ristretto refresher: entry is not []byte")
)

// Refresher reads one ristretto key and decodes it with a codec.
type Refresher[T any] struct {
	c   *rc.Cache
	key string
	dec codec.Codec[T]
}

var _ ttlcell.Refresher[string] = (*Refresher[string])(nil)

type Config[T any] struct {
	Cache *rc.Cache // shared; lifecycle stays with the caller
	Key   string
	Codec codec.Codec[T]
}

func New[T any](cfg Config[T]) (*Refresher[T], error) {
	if cfg.Cache == nil {
		return nil, ErrNilCache
	}
	if cfg.Key == "" {
		return nil, ErrNoKey
	}
	if cfg.Codec == nil {
		return nil, ErrNilCodec
	}
	return &Refresher[T]{c: cfg.Cache, key: cfg.Key, dec: cfg.Codec}, nil
}

func (r *Refresher[T]) Refresh(_ context.Context) (T, error) {
	var zero T
	v, ok := r.c.Get(r.key)
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrKeyMissing, r.key)
	}
	b, ok := v.([]byte)
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrNotBytes, r.key)
	}
	return r.dec.Decode(b)
}
