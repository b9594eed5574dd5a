// Package ttlcell implements a single-slot, TTL-bound cache: one value, the
// instant it was last refreshed, and a caller-supplied refresh operation that
// recomputes it on demand. Reads never block and judge freshness against a
// monotonic clock; a value is stale only once it is strictly older than the
// TTL. Nothing runs in the background, and a failed refresh leaves the slot
// exactly as it was.
//
// Components:
//   - Cell[T]: the slot. Get / Refresh / GetOrRefresh plus introspection.
//   - Refresher[T]: recomputes the value (RefresherFunc adapts a closure).
//   - codec.Codec[V]: (de)serializes V <-> []byte for the stock backends.
//   - refresher/...: stock Refreshers over Redis, Ristretto, BigCache and HTTP.
//   - Hooks / Logger: optional observation (promhooks, sloghooks, log/...).
//
// Access patterns:
//
//	v, err := cell.Get()             // manual: on ErrStale, cell.Refresh(ctx)
//	v, err := cell.GetOrRefresh(ctx) // automatic: refresh once iff stale
//
// A Cell is a single-owner slot; it does no locking of its own. Callers that
// share one across goroutines serialize access themselves.
package ttlcell
