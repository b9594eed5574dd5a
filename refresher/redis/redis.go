// Package redis provides a Refresher that reads the authoritative value from
// a single Redis key.
//
// The cell is the in-process slot; Redis is the shared source the slot
// re-reads on demand. Writers elsewhere keep the key current — this package
// only ever reads it.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/ttlcell"
	"github.com/unkn0wn-root/ttlcell/codec"
)

var (
	ErrNilClient = errors.New("redis refresher: nil client")
	ErrNoKey     = errors.New("redis refresher: key is required")
	ErrNilCodec  = errors.New("redis refresher: nil codec")

	// ErrKeyMissing is returned from Refresh when the configured key does
	// not exist. The cell leaves its slot untouched on refresh failure, so
	// callers keep serving the previous value.
	ErrKeyMissing = errors.New("redis refresher: key missing")
)

// Refresher fetches one Redis key and decodes it with a codec.
type Refresher[T any] struct {
	rdb goredis.UniversalClient
	key string
	dec codec.Codec[T]
}

var _ ttlcell.Refresher[string] = (*Refresher[string])(nil)

type Config[T any] struct {
	Client goredis.UniversalClient // shared; lifecycle stays with the caller
	Key    string
	Codec  codec.Codec[T]
}

func New[T any](cfg Config[T]) (*Refresher[T], error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	if cfg.Key == "" {
		return nil, ErrNoKey
	}
	if cfg.Codec == nil {
		return nil, ErrNilCodec
	}
	return &Refresher[T]{rdb: cfg.Client, key: cfg.Key, dec: cfg.Codec}, nil
}

func (r *Refresher[T]) Refresh(ctx context.Context) (T, error) {
	var zero T
	b, err := r.rdb.Get(ctx, r.key).Bytes()
	if err == goredis.Nil {
		return zero, fmt.Errorf("%w: %q", ErrKeyMissing, r.key)
	}
	if err != nil {
		return zero, err // transport/server error
	}
	return r.dec.Decode(b)
}
