package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Server  ServerConfig  `yaml:"server"`
	UI      UIConfig      `yaml:"ui"`
	Cache   CacheConfig   `yaml:"cache"`
}

type BackendConfig struct {
	// BaseURL is the analytics backend root, e.g. http://localhost:8000.
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type ServerConfig struct {
	Port        string   `yaml:"port"`
	Env         string   `yaml:"env"` // "production" switches gin to release mode
	CORSOrigins []string `yaml:"cors_origins"`
}

type UIConfig struct {
	// HeadingPrefix is stripped from the product page heading before it is
	// used as the product name in simulator requests.
	HeadingPrefix  string        `yaml:"heading_prefix"`
	DashboardRoute string        `yaml:"dashboard_route"`
	RedirectDelay  time.Duration `yaml:"redirect_delay"`
	// SessionTTL is how long an idle product page keeps its tab state.
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type CacheConfig struct {
	// TTL of 0 disables the catalogue cache.
	TTL time.Duration `yaml:"ttl"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Port:        "8080",
			Env:         "development",
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		UI: UIConfig{
			HeadingPrefix:  "📦",
			DashboardRoute: "/dashboard",
			RedirectDelay:  1500 * time.Millisecond,
			SessionTTL:     30 * time.Minute,
		},
		Cache: CacheConfig{TTL: time.Minute},
	}
}

// Load reads path (if non-empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return Merge(c, &fileCfg), nil
}

// ApplyEnv overlays the API_PORT, API_ENV and BACKEND_URL environment variables.
func (c *Config) ApplyEnv() {
	if port := os.Getenv("API_PORT"); port != "" {
		c.Server.Port = port
	}
	if env := os.Getenv("API_ENV"); env != "" {
		c.Server.Env = env
	}
	if backend := os.Getenv("BACKEND_URL"); backend != "" {
		c.Backend.BaseURL = backend
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if strings.TrimSpace(c.Backend.BaseURL) == "" {
		return errors.New("backend.base_url is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url %q is not an absolute URL", c.Backend.BaseURL)
	}
	if c.Backend.Timeout < 0 {
		return errors.New("backend.timeout must be >= 0")
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if !strings.HasPrefix(c.UI.DashboardRoute, "/") {
		return fmt.Errorf("ui.dashboard_route %q must start with /", c.UI.DashboardRoute)
	}
	if c.UI.RedirectDelay < 0 {
		return errors.New("ui.redirect_delay must be >= 0")
	}
	if c.UI.SessionTTL <= 0 {
		return errors.New("ui.session_ttl must be > 0")
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl must be >= 0")
	}
	return nil
}

// IsProduction reports whether the server runs with API_ENV=production semantics.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Merge overlays non-zero fields from override onto base.
func Merge(base, override *Config) *Config {
	out := *base
	if override.Backend.BaseURL != "" {
		out.Backend.BaseURL = strings.TrimRight(override.Backend.BaseURL, "/")
	}
	if override.Backend.Timeout != 0 {
		out.Backend.Timeout = override.Backend.Timeout
	}
	if override.Server.Port != "" {
		out.Server.Port = override.Server.Port
	}
	if override.Server.Env != "" {
		out.Server.Env = override.Server.Env
	}
	if len(override.Server.CORSOrigins) > 0 {
		out.Server.CORSOrigins = append([]string(nil), override.Server.CORSOrigins...)
	}
	// An explicit empty prefix cannot be told apart from "unset"; use a space to disable.
	if override.UI.HeadingPrefix != "" {
		out.UI.HeadingPrefix = override.UI.HeadingPrefix
	}
	if override.UI.DashboardRoute != "" {
		out.UI.DashboardRoute = override.UI.DashboardRoute
	}
	if override.UI.RedirectDelay != 0 {
		out.UI.RedirectDelay = override.UI.RedirectDelay
	}
	if override.UI.SessionTTL != 0 {
		out.UI.SessionTTL = override.UI.SessionTTL
	}
	if override.Cache.TTL != 0 {
		out.Cache.TTL = override.Cache.TTL
	}
	return &out
}
