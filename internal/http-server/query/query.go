package query

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

func Int(r *http.Request, key string) (val int, present bool, err error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("%s must be integer", key)
	}
	return n, true, nil
}

// IntMin returns def when key is absent, and rejects values below lo.
func IntMin(r *http.Request, key string, def, lo int) (int, error) {
	v, present, err := Int(r, key)
	if err != nil {
		return 0, err
	}
	if !present {
		return def, nil
	}
	if v < lo {
		return 0, fmt.Errorf("%s must be >= %d", key, lo)
	}
	return v, nil
}

func String(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
