package ttlcell

import (
	"time"
)

// Option tunes a Cell at construction time. All options are optional; a cell
// built without any is silent and clocked by time.Now.
type Option[T any] func(*Cell[T])

// WithLogger routes cell events through l. A nil l keeps logging disabled.
func WithLogger[T any](l Logger) Option[T] {
	return func(c *Cell[T]) {
		if l != nil {
			c.log = l
		}
	}
}

// WithHooks installs observation callbacks (see promhooks, sloghooks,
// hooks/async). A nil h keeps the no-op hooks.
func WithHooks[T any](h Hooks) Option[T] {
	return func(c *Cell[T]) {
		if h != nil {
			c.hooks = h
		}
	}
}

// WithClock replaces the time source. The cell only ever subtracts readings
// of now from each other, so any monotonic source works. Intended for tests.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Cell[T]) {
		if now != nil {
			c.now = now
		}
	}
}

// WithTracing starts an OpenTelemetry span around each refresher invocation,
// using the globally registered tracer provider.
func WithTracing[T any]() Option[T] {
	return func(c *Cell[T]) {
		c.tracing = true
	}
}
