package ttlcell

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/unkn0wn-root/ttlcell")

// Cell is a single-slot TTL cache: one value of type T, the instant it was
// last refreshed, and the Refresher that recomputes it. A value older than
// the TTL is stale; a value exactly TTL old is still fresh. Staleness is
// computed lazily from a monotonic clock on each read. Nothing refreshes in
// the background.
//
// A Cell is a single-owner slot. Methods must not be called concurrently;
// callers that share a cell across goroutines have to serialize access
// themselves.
type Cell[T any] struct {
	ttl       time.Duration
	value     T
	refreshed time.Time
	gen       uint64
	src       Refresher[T]

	log     Logger
	hooks   Hooks
	now     func() time.Time
	tracing bool
}

// New builds a cell pre-seeded with initial. The refresher is stored but not
// invoked; the seed value is considered freshly refreshed as of now. A
// negative ttl is treated as zero (every read after any time has passed is
// stale). New panics if src is nil, like time.NewTicker on a bad duration.
func New[T any](ttl time.Duration, initial T, src Refresher[T], opts ...Option[T]) *Cell[T] {
	c := newCell[T](ttl, src, opts)
	c.value = initial
	c.refreshed = c.now()
	c.gen = 1
	return c
}

// NewRefreshed builds a cell by invoking the refresher once for the first
// value. If that invocation fails, no cell is created and the refresher's
// error is returned as-is. On success the cell starts at generation 1 with
// last-refreshed set to the completion time of the call.
func NewRefreshed[T any](ctx context.Context, ttl time.Duration, src Refresher[T], opts ...Option[T]) (*Cell[T], error) {
	c := newCell[T](ttl, src, opts)
	if err := c.refresh(ctx, "Cell.NewRefreshed"); err != nil {
		return nil, err
	}
	return c, nil
}

func newCell[T any](ttl time.Duration, src Refresher[T], opts []Option[T]) *Cell[T] {
	if src == nil {
		panic("ttlcell: nil refresher")
	}
	if ttl < 0 {
		ttl = 0
	}
	c := &Cell[T]{
		ttl:   ttl,
		src:   src,
		log:   NopLogger{},
		hooks: NopHooks{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value if it is still within the TTL, without ever
// invoking the refresher. On a stale slot it returns the zero value and
// ErrStale; the caller decides whether to Refresh. Get never blocks, so it
// takes no context.
func (c *Cell[T]) Get() (T, error) {
	age := c.Age()
	if age > c.ttl {
		c.hooks.StaleMiss(age, c.ttl)
		var zero T
		return zero, ErrStale
	}
	c.hooks.FreshHit(age)
	return c.value, nil
}

// Refresh invokes the refresher exactly once, regardless of freshness. On
// success the new value is installed and last-refreshed is set to the instant
// the refresher returned. On failure the error is returned untouched and the
// cell keeps its previous value, timestamp and generation.
func (c *Cell[T]) Refresh(ctx context.Context) error {
	return c.refresh(ctx, "Cell.Refresh")
}

// GetOrRefresh returns the cached value when fresh, invoking nothing and
// ignoring ctx entirely. When stale it invokes the refresher once; on success
// the freshly installed value is returned, on failure the zero value and the
// refresher's error (the slot stays stale and untouched).
func (c *Cell[T]) GetOrRefresh(ctx context.Context) (T, error) {
	age := c.Age()
	if age <= c.ttl {
		c.hooks.FreshHit(age)
		return c.value, nil
	}
	c.hooks.StaleMiss(age, c.ttl)
	c.log.Debug("stale on read, refreshing", Fields{"age": age, "ttl": c.ttl})
	if err := c.refresh(ctx, "Cell.GetOrRefresh"); err != nil {
		var zero T
		return zero, err
	}
	return c.value, nil
}

func (c *Cell[T]) refresh(ctx context.Context, op string) error {
	var span trace.Span
	if c.tracing {
		ctx, span = tracer.Start(ctx, op,
			trace.WithAttributes(attribute.String("ttlcell.ttl", c.ttl.String())))
		defer span.End()
	}

	start := c.now()
	v, err := c.src.Refresh(ctx)
	done := c.now()
	elapsed := done.Sub(start)
	if err != nil {
		c.hooks.RefreshErr(elapsed, err)
		c.log.Warn("refresh failed", Fields{"elapsed": elapsed, "err": err})
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "refresh failed")
		}
		return err
	}

	c.value = v
	c.refreshed = done
	c.gen++
	c.hooks.RefreshOK(elapsed, c.gen)
	c.log.Debug("value refreshed", Fields{"elapsed": elapsed, "gen": c.gen})
	if span != nil {
		span.SetAttributes(attribute.Int64("ttlcell.generation", int64(c.gen)))
	}
	return nil
}

// TTL reports the freshness window the cell was built with.
func (c *Cell[T]) TTL() time.Duration { return c.ttl }

// LastRefreshed reports when the current value was installed. The reading
// carries a monotonic component, so differences against the cell's clock are
// wall-clock-jump safe.
func (c *Cell[T]) LastRefreshed() time.Time { return c.refreshed }

// Age reports how long ago the current value was installed.
func (c *Cell[T]) Age() time.Duration { return c.now().Sub(c.refreshed) }

// Stale reports whether a Get right now would return ErrStale.
func (c *Cell[T]) Stale() bool { return c.Age() > c.ttl }

// Generation counts successful value installs, starting at 1 for the
// construction-time value. A failed refresh never moves it.
func (c *Cell[T]) Generation() uint64 { return c.gen }

// String formats the cell's bookkeeping for debug output. The value itself
// is omitted: T need not be printable and may be sensitive.
func (c *Cell[T]) String() string {
	return fmt.Sprintf("Cell{ttl: %v, age: %v, gen: %d}", c.ttl, c.Age(), c.gen)
}
