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
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_PORT", "")
	t.Setenv("API_ENV", "")
	t.Setenv("BACKEND_URL", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/dashboard", cfg.UI.DashboardRoute)
	assert.Equal(t, 1500*time.Millisecond, cfg.UI.RedirectDelay)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv("API_PORT", "")
	t.Setenv("API_ENV", "")
	t.Setenv("BACKEND_URL", "")

	path := writeConfig(t, `
backend:
  base_url: http://analytics.internal:9000/
  timeout: 5s
ui:
  heading_prefix: "#"
  redirect_delay: 2s
  session_ttl: 5m
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://analytics.internal:9000", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "#", cfg.UI.HeadingPrefix)
	assert.Equal(t, 2*time.Second, cfg.UI.RedirectDelay)
	assert.Equal(t, 5*time.Minute, cfg.UI.SessionTTL)
	// untouched sections keep defaults
	assert.Equal(t, "/dashboard", cfg.UI.DashboardRoute)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("API_ENV", "production")
	t.Setenv("BACKEND_URL", "http://backend:8000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "http://backend:8000", cfg.Backend.BaseURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"relative backend", func(c *Config) { c.Backend.BaseURL = "localhost:8000" }},
		{"empty backend", func(c *Config) { c.Backend.BaseURL = " " }},
		{"bad route", func(c *Config) { c.UI.DashboardRoute = "dashboard" }},
		{"negative delay", func(c *Config) { c.UI.RedirectDelay = -time.Second }},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }},
		{"no port", func(c *Config) { c.Server.Port = "" }},
		{"zero session ttl", func(c *Config) { c.UI.SessionTTL = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
