package client

import (
	"log/slog"
	"net/http"
	"time"

	"catalogadmin/internal/client/httpc"
	"catalogadmin/internal/client/transport"
)

type Transport = transport.Transport

type Options struct {
	Timeout     time.Duration
	Concurrency int
	Logger      *slog.Logger
}

// Build returns the transport every catalog request goes through: a plain
// http.Client bounded by Timeout, optionally capped to Concurrency in-flight
// requests, with per-request debug logging.
func Build(opts Options) (Transport, error) {
	return transport.Build(transport.Options{
		HTTPClient:  NewHTTPClient(opts.Timeout),
		Concurrency: opts.Concurrency,
		Logger:      opts.Logger,
	})
}

func NewHTTPClient(timeout time.Duration) *http.Client {
	return httpc.New(timeout)
}
