package endpoints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
)

// UpstreamError covers transport failures, timeouts and non-2xx replies.
type UpstreamError struct {
	Op      string
	Status  int
	Timeout bool
	Message string
	Body    string
	Err     error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s: upstream timeout", e.Op)
	case e.Err != nil:
		return fmt.Sprintf("%s: upstream request failed: %v", e.Op, e.Err)
	}
	msg := e.Message
	if msg == "" {
		msg = strings.TrimSpace(e.Body)
	}
	return fmt.Sprintf("%s: upstream error: status=%d message=%s", e.Op, e.Status, msg)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NotFoundError means the upstream reported the entity as absent.
type NotFoundError struct {
	Resource string
	ID       string
	Message  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// MalformedResponseError means a 2xx reply lacked the fields we need.
type MalformedResponseError struct {
	Op     string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: malformed response: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: malformed response: %s", e.Op, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func ParseUpstreamError(op string, status int, body []byte) *UpstreamError {
	body = body[:min(len(body), 4096)]
	out := &UpstreamError{Op: op, Status: status, Body: string(body)}

	var m map[string]any
	if json.Unmarshal(body, &m) == nil {
		if v, ok := m["message"].(string); ok {
			out.Message = v
		}
	}
	return out
}

func transportError(op string, err error) *UpstreamError {
	out := &UpstreamError{Op: op, Err: err}
	if errors.Is(err, context.DeadlineExceeded) {
		out.Timeout = true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		out.Timeout = true
	}
	return out
}

// IsTimeout reports whether err carries an upstream timeout.
func IsTimeout(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Timeout
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
