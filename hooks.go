package ttlcell

import (
	"time"
)

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cell calls them inline on read and refresh paths.
type Hooks interface {
	// A read was served from the slot. age is time since the last
	// successful refresh.
	FreshHit(age time.Duration)

	// A read found the slot stale: Get returned ErrStale, or GetOrRefresh
	// is about to invoke the refresher.
	StaleMiss(age, ttl time.Duration)

	// The refresher succeeded and the new value was installed.
	// gen is the generation after the install.
	RefreshOK(elapsed time.Duration, gen uint64)

	// The refresher failed. The error is still returned to the caller
	// unchanged; this is observation only.
	RefreshErr(elapsed time.Duration, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) FreshHit(time.Duration)                 {}
func (NopHooks) StaleMiss(time.Duration, time.Duration) {}
func (NopHooks) RefreshOK(time.Duration, uint64)        {}
func (NopHooks) RefreshErr(time.Duration, error)        {}
