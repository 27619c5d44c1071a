package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues the raw catalog requests. It knows paths, query parameters
// and response shapes; retries, concurrency and timeouts live in the Doer.
type Client struct {
	Doer         Doer
	BaseURL      string
	ApplyHeaders func(*http.Request)
}

func New(doer Doer, baseURL string, applyHeaders func(*http.Request)) *Client {
	return &Client{
		Doer:         doer,
		BaseURL:      strings.TrimRight(baseURL, "/"),
		ApplyHeaders: applyHeaders,
	}
}

func (c *Client) newReq(ctx context.Context, method, path string, query url.Values) (*http.Request, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("BaseURL is empty")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, err
	}
	if c.ApplyHeaders != nil {
		c.ApplyHeaders(req)
	}
	return req, nil
}

// get performs a GET and returns the status code with a size-capped body.
// Transport failures come back as *UpstreamError.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, limit int64) (int, []byte, error) {
	req, err := c.newReq(ctx, http.MethodGet, path, query)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", op, err)
	}

	resp, err := c.Doer.Do(req)
	if err != nil {
		return 0, nil, transportError(op, err)
	}

	b, err := readLimited(resp, limit)
	if err != nil {
		return resp.StatusCode, nil, transportError(op, err)
	}
	return resp.StatusCode, b, nil
}

func readLimited(resp *http.Response, limit int64) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

func decodeJSON[T any](b []byte, out *T) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return dec.Decode(out)
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}
