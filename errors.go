package ttlcell

import (
	"errors"
)

// ErrStale is returned by [Cell.Get] when the cached value has outlived its
// TTL. It carries no state about the cell; test with errors.Is and recover
// with [Cell.Refresh] or [Cell.GetOrRefresh].
var ErrStale = errors.New("ttlcell: value is stale, refresh required")
