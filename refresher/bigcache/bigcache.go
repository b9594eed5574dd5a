// Package bigcache provides a Refresher backed by a shared BigCache
// instance. The cell re-reads its key on demand; whoever owns the BigCache
// keeps the key populated.
package bigcache

import (
	"context"
	"errors"
	"fmt"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/ttlcell"
	"github.com/unkn0wn-root/ttlcell/codec"
)

var (
	ErrNilCache = errors.New("bigcache refresher: nil cache")
	ErrNoKey    = errors.New("bigcache refresher: key is required")
	ErrNilCodec = errors.New("bigcache refresher: nil codec")

	// ErrKeyMissing is returned from Refresh when the key is absent or has
	// aged out of the BigCache life window.
	ErrKeyMissing = errors.New("bigcache refresher: key missing")
)

// Refresher reads one BigCache key and decodes it with a codec.
type Refresher[T any] struct {
	c   *bc.BigCache
	key string
	dec codec.Codec[T]
}

var _ ttlcell.Refresher[string] = (*Refresher[string])(nil)

type Config[T any] struct {
	Cache *bc.BigCache // shared; lifecycle stays with the caller
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
	b, err := r.c.Get(r.key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return zero, fmt.Errorf("%w: %q", ErrKeyMissing, r.key)
	}
	if err != nil {
		return zero, err
	}
	return r.dec.Decode(b)
}
