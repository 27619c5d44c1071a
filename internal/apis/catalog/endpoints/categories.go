package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	const op = "ListCategories"

	status, b, err := c.get(ctx, op, "/products/categories", nil, 512*1024)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, ParseUpstreamError(op, status, b)
	}

	out, err := NormalizeCategories(b)
	if err != nil {
		return nil, &MalformedResponseError{Op: op, Reason: "unexpected categories shape", Err: err}
	}
	return out, nil
}

// NormalizeCategories accepts a bare array, an object with a "categories"
// array, or any other object whose values are taken in document order.
// Each element becomes one identifier: strings pass through, objects yield
// slug, then name, then their compact JSON. Nulls are dropped.
func NormalizeCategories(b []byte) ([]string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("empty body")
	}

	var elems []json.RawMessage
	switch b[0] {
	case '[':
		if err := json.Unmarshal(b, &elems); err != nil {
			return nil, err
		}
	case '{':
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(b, &probe); err != nil {
			return nil, err
		}
		if raw, ok := probe["categories"]; ok && bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
			if err := json.Unmarshal(raw, &elems); err != nil {
				return nil, err
			}
			break
		}
		vals, err := objectValues(b)
		if err != nil {
			return nil, err
		}
		elems = vals
	default:
		return nil, fmt.Errorf("expected array or object, got %q", b[:min(len(b), 32)])
	}

	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if s, ok := categoryID(e); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// objectValues returns the values of a JSON object in the order they appear.
func objectValues(b []byte) ([]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var out []json.RawMessage
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func categoryID(raw json.RawMessage) (string, bool) {
	var v any
	if err := decodeJSON(raw, &v); err != nil {
		return "", false
	}

	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case map[string]any:
		if s := pickString(t, "slug", "name"); s != "" {
			return s, true
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw), true
	}
	return buf.String(), true
}

func pickString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
