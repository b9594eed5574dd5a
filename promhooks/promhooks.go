// Package promhooks exports cell events as Prometheus metrics.
//
// All series are registered on the Registerer the caller provides, so one
// process can scope several cells with separately prefixed registries or
// share one registry across cells that should aggregate.
package promhooks

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/ttlcell"
)

type Hooks struct {
	reads     *prometheus.CounterVec // result: fresh|stale
	refreshes *prometheus.CounterVec // outcome: ok|error
	latency   prometheus.Histogram
}

var _ ttlcell.Hooks = (*Hooks)(nil)

// New builds the hook set and registers its collectors on reg.
// It panics if a collector with the same name is already registered,
// like prometheus.MustRegister.
func New(reg prometheus.Registerer) *Hooks {
	h := &Hooks{
		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ttlcell_reads_total",
			Help: "Reads served by the cell, by freshness result",
		}, []string{"result"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ttlcell_refreshes_total",
			Help: "Refresher invocations, by outcome",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ttlcell_refresh_duration_seconds",
			Help:    "Latency of refresher invocations",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(h.reads, h.refreshes, h.latency)
	return h
}

func (h *Hooks) FreshHit(time.Duration) {
	h.reads.WithLabelValues("fresh").Inc()
}

func (h *Hooks) StaleMiss(time.Duration, time.Duration) {
	h.reads.WithLabelValues("stale").Inc()
}

func (h *Hooks) RefreshOK(elapsed time.Duration, _ uint64) {
	h.refreshes.WithLabelValues("ok").Inc()
	h.latency.Observe(elapsed.Seconds())
}

func (h *Hooks) RefreshErr(elapsed time.Duration, _ error) {
	h.refreshes.WithLabelValues("error").Inc()
	h.latency.Observe(elapsed.Seconds())
}
