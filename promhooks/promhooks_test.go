package promhooks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/unkn0wn-root/ttlcell"
)

func TestCountersAndLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg)

	h.FreshHit(10 * time.Millisecond)
	h.FreshHit(20 * time.Millisecond)
	h.StaleMiss(2*time.Second, time.Second)
	h.RefreshOK(30*time.Millisecond, 2)
	h.RefreshErr(5*time.Millisecond, errors.New("upstream down"))

	if got := testutil.ToFloat64(h.reads.WithLabelValues("fresh")); got != 2 {
		t.Fatalf("fresh reads = %v, want 2", got)
	}
	if got := testutil.ToFloat64(h.reads.WithLabelValues("stale")); got != 1 {
		t.Fatalf("stale reads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.refreshes.WithLabelValues("ok")); got != 1 {
		t.Fatalf("ok refreshes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.refreshes.WithLabelValues("error")); got != 1 {
		t.Fatalf("error refreshes = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(h.latency); got != 1 {
		t.Fatalf("latency series = %d, want 1", got)
	}
}

func TestRegistersAllFamilies(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg)

	h.FreshHit(time.Millisecond)
	h.RefreshOK(time.Millisecond, 1)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := make(map[string]bool, len(mfs))
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"ttlcell_reads_total",
		"ttlcell_refreshes_total",
		"ttlcell_refresh_duration_seconds",
	} {
		if !names[want] {
			t.Fatalf("metric %q not registered (got %v)", want, names)
		}
	}
}

// TestHooksOnCell wires the collector into a live cell and checks that every
// access path lands in the right series.
func TestHooksOnCell(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg)

	now := time.Unix(1700000000, 0)
	var srcErr error
	src := ttlcell.RefresherFunc[int](func(context.Context) (int, error) {
		return 7, srcErr
	})

	cell := ttlcell.New(time.Second, 1, src,
		ttlcell.WithHooks[int](h),
		ttlcell.WithClock[int](func() time.Time { return now }),
	)
	ctx := context.Background()

	if _, err := cell.Get(); err != nil { // fresh
		t.Fatalf("Get: %v", err)
	}
	now = now.Add(2 * time.Second)
	if _, err := cell.Get(); !errors.Is(err, ttlcell.ErrStale) { // stale
		t.Fatalf("Get: %v, want ErrStale", err)
	}
	if err := cell.Refresh(ctx); err != nil { // ok
		t.Fatalf("Refresh: %v", err)
	}
	srcErr = errors.New("boom")
	if err := cell.Refresh(ctx); err == nil { // error
		t.Fatal("Refresh: expected failure")
	}

	if got := testutil.ToFloat64(h.reads.WithLabelValues("fresh")); got != 1 {
		t.Fatalf("fresh reads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.reads.WithLabelValues("stale")); got != 1 {
		t.Fatalf("stale reads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.refreshes.WithLabelValues("ok")); got != 1 {
		t.Fatalf("ok refreshes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.refreshes.WithLabelValues("error")); got != 1 {
		t.Fatalf("error refreshes = %v, want 1", got)
	}
}
