package httpfetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/unkn0wn-root/ttlcell"
	"github.com/unkn0wn-root/ttlcell/codec"
)

type release struct {
	Tag string `json:"tag"`
}

func TestRefreshDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want forwarded bearer", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag":"v1.4.2"}`))
	}))
	t.Cleanup(srv.Close)

	src, err := New[release](Config[release]{
		URL:    srv.URL,
		Header: http.Header{"Authorization": []string{"Bearer tok"}},
		Codec:  codec.JSON[release]{},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := src.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got.Tag != "v1.4.2" {
		t.Fatalf("Refresh = %+v, want tag v1.4.2", got)
	}
}

func TestRefreshNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	src, err := New[release](Config[release]{URL: srv.URL, Codec: codec.JSON[release]{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = src.Refresh(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusNotFound || se.URL != srv.URL {
		t.Fatalf("StatusError = %+v", se)
	}
	if !strings.Contains(string(se.Body), "nope") {
		t.Fatalf("Body = %q, want server message", se.Body)
	}
}

func TestRefreshBodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`"` + strings.Repeat("a", 64) + `"`))
	}))
	t.Cleanup(srv.Close)

	src, err := New[string](Config[string]{URL: srv.URL, Codec: codec.JSON[string]{}, MaxBody: 32})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := src.Refresh(context.Background()); !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("err = %v, want ErrBodyTooLarge", err)
	}
}

func TestRefreshContextCancel(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})

	src, err := New[release](Config[release]{URL: srv.URL, Codec: codec.JSON[release]{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := src.Refresh(ctx); err == nil {
		t.Fatal("expected error after context deadline")
	}
}

func TestConfigValidation(t *testing.T) {
	if _, err := New[release](Config[release]{Codec: codec.JSON[release]{}}); !errors.Is(err, ErrNoURL) {
		t.Fatalf("no url: %v", err)
	}
	if _, err := New[release](Config[release]{URL: "http://x"}); !errors.Is(err, ErrNilCodec) {
		t.Fatalf("nil codec: %v", err)
	}
}

// TestCellOverHTTP: a zero-TTL cell treats every read as stale and re-fetches.
func TestCellOverHTTP(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"tag":"v2"}`))
	}))
	t.Cleanup(srv.Close)

	src, err := New[release](Config[release]{URL: srv.URL, Codec: codec.JSON[release]{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	cell, err := ttlcell.NewRefreshed[release](ctx, 0, src)
	if err != nil {
		t.Fatalf("NewRefreshed: %v", err)
	}

	time.Sleep(2 * time.Millisecond)
	if got, err := cell.GetOrRefresh(ctx); err != nil || got.Tag != "v2" {
		t.Fatalf("GetOrRefresh: got=%+v err=%v", got, err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("hits = %d, want 2 (construct + stale read)", got)
	}
}
