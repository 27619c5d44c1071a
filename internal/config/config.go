package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type Root struct {
	Env   string `yaml:"env"`
	Local Config `yaml:"local"`
	Dev   Config `yaml:"dev"`
	Prod  Config `yaml:"prod"`
}

type Config struct {
	Env string `yaml:"-"`

	Log struct {
		Level     string `yaml:"level"`
		Format    string `yaml:"format"`
		AddSource bool   `yaml:"add_source"`
		File      string `yaml:"file"`
	} `yaml:"log"`

	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`

	Catalog struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"catalog"`

	Listing struct {
		PageSize         int    `yaml:"page_size"`
		CategoryLimit    int    `yaml:"category_limit"`
		SearchLimit      int    `yaml:"search_limit"`
		SearchDebounceMS int    `yaml:"search_debounce_ms"`
		RelatedLimit     int    `yaml:"related_limit"`
		RelatedCount     int    `yaml:"related_count"`
		Locale           string `yaml:"locale"`
	} `yaml:"listing"`

	Catalogue struct {
		ThumbnailWorkers int `yaml:"thumbnail_workers"`
	} `yaml:"catalogue"`

	HTTP struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
		Concurrency    int `yaml:"concurrency"`
	} `yaml:"http"`

	TUI struct {
		GlamourStyle string `yaml:"glamour_style"`
	} `yaml:"tui"`
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.Listing.SearchDebounceMS) * time.Millisecond
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Load reads an optional .env, then the profile file at path, then CATALOG_*
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var root Root
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &root); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	env := root.Env
	if v, ok := os.LookupEnv("CATALOG_ENV"); ok {
		env = v
	}
	env = strings.TrimSpace(strings.ToLower(env))
	if env == "" {
		env = "local"
	}

	var p Config
	switch env {
	case "local":
		p = root.Local
	case "dev":
		p = root.Dev
	case "prod":
		p = root.Prod
	default:
		return nil, fmt.Errorf("unknown env=%q (expected local|dev|prod)", env)
	}
	p.Env = env

	if err := applyEnvOverrides(&p); err != nil {
		return nil, err
	}
	applyDefaults(&p)
	return &p, nil
}

func applyEnvOverrides(p *Config) error {
	if v := strings.TrimSpace(os.Getenv("CATALOG_BASE_URL")); v != "" {
		p.Catalog.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("CATALOG_LOG_LEVEL")); v != "" {
		p.Log.Level = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"CATALOG_PORT", &p.Server.Port},
		{"CATALOG_TIMEOUT_SECONDS", &p.HTTP.TimeoutSeconds},
	}
	for _, it := range ints {
		v := strings.TrimSpace(os.Getenv(it.key))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", it.key, v, err)
		}
		*it.dst = n
	}
	return nil
}

func applyDefaults(p *Config) {
	if p.Catalog.BaseURL == "" {
		p.Catalog.BaseURL = "https://dummyjson.com"
	}
	p.Catalog.BaseURL = strings.TrimRight(p.Catalog.BaseURL, "/")

	if p.Server.Host == "" {
		p.Server.Host = "0.0.0.0"
	}
	if p.Server.Port == 0 {
		p.Server.Port = 7891
	}

	if p.Listing.PageSize <= 0 {
		p.Listing.PageSize = 20
	}
	if p.Listing.CategoryLimit <= 0 {
		p.Listing.CategoryLimit = 100
	}
	if p.Listing.SearchLimit <= 0 {
		p.Listing.SearchLimit = 100
	}
	if p.Listing.SearchDebounceMS <= 0 {
		p.Listing.SearchDebounceMS = 300
	}
	if p.Listing.RelatedLimit <= 0 {
		p.Listing.RelatedLimit = 6
	}
	if p.Listing.RelatedCount <= 0 {
		p.Listing.RelatedCount = 5
	}
	if p.Listing.Locale == "" {
		p.Listing.Locale = "en"
	}

	if p.Catalogue.ThumbnailWorkers <= 0 {
		p.Catalogue.ThumbnailWorkers = 4
	}

	if p.HTTP.TimeoutSeconds <= 0 {
		p.HTTP.TimeoutSeconds = 10
	}
	if p.HTTP.Concurrency < 0 {
		p.HTTP.Concurrency = 0
	}

	if p.TUI.GlamourStyle == "" {
		p.TUI.GlamourStyle = "dark"
	}

	if p.Log.Level == "" {
		if p.Env == "prod" {
			p.Log.Level = "info"
		} else {
			p.Log.Level = "debug"
		}
	}
	if p.Log.Format == "" {
		if p.Env == "prod" {
			p.Log.Format = "json"
		} else {
			p.Log.Format = "text"
		}
	}
}
