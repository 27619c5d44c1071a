package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
)

type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	HTTPClient  *http.Client
	Concurrency int // 0 = unlimited
	Logger      *slog.Logger
}

func (o Options) validate() error {
	if o.HTTPClient == nil {
		return fmt.Errorf("HTTPClient is nil")
	}
	if o.Concurrency < 0 {
		return fmt.Errorf("Concurrency must be >= 0")
	}
	return nil
}

func Build(opts Options) (Transport, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	var t Transport = &HTTPTransport{Client: opts.HTTPClient}

	t = &LoggingTransport{Base: t, Log: opts.Logger}

	if opts.Concurrency > 0 {
		t = NewConcurrencyTransport(t, opts.Concurrency)
	}

	return t, nil
}

type HTTPTransport struct {
	Client *http.Client
}

func (h *HTTPTransport) Do(req *http.Request) (*http.Response, error) {
	return h.Client.Do(req)
}

type LoggingTransport struct {
	Base Transport
	Log  *slog.Logger
}

func (t *LoggingTransport) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.Base.Do(req)

	attrs := []any{
		"method", req.Method,
		"url", req.URL.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		t.Log.Debug("upstream request failed", append(attrs, "err", err)...)
		return nil, err
	}
	t.Log.Debug("upstream request", append(attrs, "status", resp.StatusCode)...)
	return resp, nil
}

// ConcurrencyTransport caps the number of requests in flight. Waiting for a
// slot honors the request context.
type ConcurrencyTransport struct {
	Base Transport
	sem  *semaphore.Weighted
}

func NewConcurrencyTransport(base Transport, n int) *ConcurrencyTransport {
	if n <= 0 {
		n = 1
	}
	return &ConcurrencyTransport{Base: base, sem: semaphore.NewWeighted(int64(n))}
}

func (t *ConcurrencyTransport) Do(req *http.Request) (*http.Response, error) {
	if err := t.sem.Acquire(req.Context(), 1); err != nil {
		return nil, err
	}
	defer t.sem.Release(1)

	return t.Base.Do(req)
}
