package ttlcell

import (
	"context"
)

// Refresher produces the authoritative value the cell caches. The cell calls
// Refresh only when the caller asks for it (Refresh, GetOrRefresh on a stale
// slot, or NewRefreshed); there is no background invocation.
//
// A Refresher error is returned to the caller verbatim. The cell never wraps,
// retries or logs-and-swallows it, so sentinel checks like errors.Is work
// against the refresher's own errors.
type Refresher[T any] interface {
	Refresh(ctx context.Context) (T, error)
}

// RefresherFunc adapts a plain function to the Refresher interface.
type RefresherFunc[T any] func(ctx context.Context) (T, error)

func (f RefresherFunc[T]) Refresh(ctx context.Context) (T, error) { return f(ctx) }
