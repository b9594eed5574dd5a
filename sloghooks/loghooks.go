// Package sloghooks emits cell events as slog records. Hot events (fresh
// hits, stale misses) can be sampled to avoid floods; refresh outcomes are
// always logged.
package sloghooks

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/ttlcell"
)

type Options struct {
	// Sampling to avoid floods on the read path; 0/1 = log all.
	FreshEvery uint64
	StaleEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	freshCtr atomic.Uint64
	staleCtr atomic.Uint64
}

var _ ttlcell.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) FreshHit(age time.Duration) {
	if h.l == nil || !sample(h.opts.FreshEvery, &h.freshCtr) {
		return
	}
	h.l.Debug("ttlcell.fresh_hit",
		"age", age)
}

func (h *Hooks) StaleMiss(age, ttl time.Duration) {
	if h.l == nil || !sample(h.opts.StaleEvery, &h.staleCtr) {
		return
	}
	h.l.Info("ttlcell.stale_miss",
		"age", age,
		"ttl", ttl)
}

func (h *Hooks) RefreshOK(elapsed time.Duration, gen uint64) {
	if h.l == nil {
		return
	}
	h.l.Debug("ttlcell.refresh_ok",
		"elapsed", elapsed,
		"gen", gen)
}

func (h *Hooks) RefreshErr(elapsed time.Duration, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("ttlcell.refresh_err",
		"elapsed", elapsed,
		"err", err)
}
