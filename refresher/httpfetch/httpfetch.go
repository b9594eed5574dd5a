// Package httpfetch provides a Refresher that GETs the authoritative value
// from an HTTP endpoint and decodes the response body with a codec.
package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/unkn0wn-root/ttlcell"
	"github.com/unkn0wn-root/ttlcell/codec"
)

const (
	defaultMaxBody = 4 << 20  // response cap when Config.MaxBody is unset
	errBodyLimit   = 16 << 10 // enough of an error body for diagnostics
)

var (
	ErrNoURL    = errors.New("httpfetch: url is required")
	ErrNilCodec = errors.New("httpfetch: nil codec")

	// ErrBodyTooLarge is returned when the response exceeds MaxBody. The
	// oversized payload is never handed to the codec.
	ErrBodyTooLarge = errors.New("httpfetch: response body too large")
)

// StatusError reports a non-2xx response. Body holds the first bytes of the
// response for diagnostics.
type StatusError struct {
	StatusCode int
	URL        string
	Body       []byte
}

func (e *StatusError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("httpfetch: GET %s: want 2xx, got %d: %s", e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("httpfetch: GET %s: want 2xx, got %d", e.URL, e.StatusCode)
}

// Refresher fetches one URL and decodes the body.
type Refresher[T any] struct {
	client  *http.Client
	url     string
	header  http.Header
	dec     codec.Codec[T]
	maxBody int64
}

var _ ttlcell.Refresher[string] = (*Refresher[string])(nil)

type Config[T any] struct {
	Client  *http.Client // nil => http.DefaultClient
	URL     string
	Header  http.Header // optional extra request headers (auth, accept, ...)
	Codec   codec.Codec[T]
	MaxBody int64 // response size cap in bytes; 0 => 4 MiB
}

func New[T any](cfg Config[T]) (*Refresher[T], error) {
	if cfg.URL == "" {
		return nil, ErrNoURL
	}
	if cfg.Codec == nil {
		return nil, ErrNilCodec
	}
	r := &Refresher[T]{
		client:  cfg.Client,
		url:     cfg.URL,
		header:  cfg.Header,
		dec:     cfg.Codec,
		maxBody: cfg.MaxBody,
	}
	if r.client == nil {
		r.client = http.DefaultClient
	}
	if r.maxBody <= 0 {
		r.maxBody = defaultMaxBody
	}
	return r, nil
}

func (r *Refresher[T]) Refresh(ctx context.Context) (T, error) {
	var zero T
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return zero, err
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	res, err := r.client.Do(req)
	if err != nil {
		return zero, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, errBodyLimit))
		return zero, &StatusError{StatusCode: res.StatusCode, URL: r.url, Body: body}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, r.maxBody+1))
	if err != nil {
		return zero, err
	}
	if int64(len(body)) > r.maxBody {
		return zero, fmt.Errorf("%w: %s over %d bytes", ErrBodyTooLarge, r.url, r.maxBody)
	}
	return r.dec.Decode(body)
}
