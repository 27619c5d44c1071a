package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "https://dummyjson.com", cfg.Catalog.BaseURL)
	assert.Equal(t, 20, cfg.Listing.PageSize)
	assert.Equal(t, 100, cfg.Listing.CategoryLimit)
	assert.Equal(t, 100, cfg.Listing.SearchLimit)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce())
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "0.0.0.0:7891", cfg.Addr())
}

func TestLoad_SelectsProfile(t *testing.T) {
	path := writeConfig(t, `
env: prod
local:
  server: {port: 1}
prod:
  server: {port: 8080}
  catalog: {base_url: "https://example.test/"}
  listing: {page_size: 30}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://example.test", cfg.Catalog.BaseURL)
	assert.Equal(t, 30, cfg.Listing.PageSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_ENV", "dev")
	t.Setenv("CATALOG_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("CATALOG_LOG_LEVEL", "warn")
	t.Setenv("CATALOG_PORT", "9000")
	t.Setenv("CATALOG_TIMEOUT_SECONDS", "3")

	path := writeConfig(t, `
env: local
dev:
  server: {port: 1234}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Catalog.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Timeout())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeConfig(t, "env: staging\n"))
	assert.ErrorContains(t, err, "unknown env")

	_, err = Load(writeConfig(t, "env: [\n"))
	assert.Error(t, err)

	t.Setenv("CATALOG_PORT", "eighty")
	_, err = Load(writeConfig(t, "env: local\n"))
	assert.ErrorContains(t, err, "CATALOG_PORT")
}
