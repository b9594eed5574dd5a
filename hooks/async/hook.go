// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/ttlcell"
//	"github.com/unkn0wn-root/ttlcell/hooks/async"
//	"github.com/unkn0wn-root/ttlcell/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    FreshEvery: 100, // sample logs: ~every 100th fresh hit
//	    StaleEvery: 1,   // log every stale miss
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	cell := ttlcell.New(ttl, seed, src,
//	    ttlcell.WithHooks[Config](hooks)) // or `raw` if you don't want async
package asynchook

import (
	"sync"
	"time"

	"github.com/unkn0wn-root/ttlcell"
)

type Hooks struct {
	inner ttlcell.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ ttlcell.Hooks = (*Hooks)(nil)

func New(inner ttlcell.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) FreshHit(age time.Duration) { h.try(func() { h.inner.FreshHit(age) }) }
func (h *Hooks) StaleMiss(age, ttl time.Duration) {
	h.try(func() { h.inner.StaleMiss(age, ttl) })
}
func (h *Hooks) RefreshOK(elapsed time.Duration, gen uint64) {
	h.try(func() { h.inner.RefreshOK(elapsed, gen) })
}
func (h *Hooks) RefreshErr(elapsed time.Duration, err error) {
	h.try(func() { h.inner.RefreshErr(elapsed, err) })
}
