package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const secret = "0123456789abcdef0123456789abcdef"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
listen = ":9000"
backend_url = "https://api.example.com/"
session_secret = "`+secret+`"
request_timeout = "3s"
envelope_version = "v2"

[log]
level = "debug"
format = "json"

[tls]
cert_file = "/etc/tls/cert.pem"
key_file = "/etc/tls/key.pem"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":9000" {
		t.Errorf("listen = %q, want %q", cfg.Listen, ":9000")
	}
	if cfg.BackendURL != "https://api.example.com" {
		t.Errorf("backend_url = %q, want trailing slash trimmed", cfg.BackendURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("request_timeout = %v, want 3s", cfg.RequestTimeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if !cfg.TLS.Enabled() {
		t.Error("tls should be enabled")
	}
	if cfg.DefaultLocale != "ru" {
		t.Errorf("default_locale = %q, want default %q", cfg.DefaultLocale, "ru")
	}
	if !cfg.CookieSecure {
		t.Error("cookie_secure should keep its default")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `session_secret = "`+secret+`"`)
	t.Setenv("TRANSCRIPT_LISTEN", ":7000")
	t.Setenv("TRANSCRIPT_BACKEND_URL", "http://backend:8000")
	t.Setenv("TRANSCRIPT_COOKIE_SECURE", "false")
	t.Setenv("TRANSCRIPT_REQUEST_TIMEOUT", "250ms")
	t.Setenv("TRANSCRIPT_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":7000" || cfg.BackendURL != "http://backend:8000" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.CookieSecure {
		t.Error("cookie_secure should be false")
	}
	if cfg.RequestTimeout != 250*time.Millisecond {
		t.Errorf("request_timeout = %v", cfg.RequestTimeout)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestEnvOverrideParseErrors(t *testing.T) {
	path := writeConfig(t, `session_secret = "`+secret+`"`)
	t.Setenv("TRANSCRIPT_COOKIE_SECURE", "maybe")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "TRANSCRIPT_COOKIE_SECURE") {
		t.Errorf("err = %v, want cookie secure parse error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"short secret", func(c *Config) { c.SessionSecret = "short" }, "session_secret"},
		{"no backend", func(c *Config) { c.BackendURL = "" }, "backend_url is required"},
		{"bad backend", func(c *Config) { c.BackendURL = "ftp://x" }, "backend_url"},
		{"bad admin", func(c *Config) { c.AdminURL = "not a url" }, "admin_url"},
		{"bad version", func(c *Config) { c.EnvelopeVersion = "v7" }, "envelope version"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"half tls", func(c *Config) { c.TLS.CertFile = "cert.pem" }, "tls"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "request_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.SessionSecret = secret
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}

	cfg := Default()
	cfg.SessionSecret = secret
	cfg.AdminURL = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("admin_url is optional: %v", err)
	}
}

func TestFilePathFromEnv(t *testing.T) {
	t.Setenv("TRANSCRIPT_CONFIG", "/tmp/explicit.toml")
	if got := FilePath(); got != "/tmp/explicit.toml" {
		t.Errorf("FilePath = %q", got)
	}

	t.Setenv("TRANSCRIPT_CONFIG", "")
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if got := FilePath(); got != "" {
		t.Errorf("FilePath without file = %q, want empty", got)
	}
	want := filepath.Join(dir, "transcript-web", "config.toml")
	os.MkdirAll(filepath.Dir(want), 0o755)
	os.WriteFile(want, nil, 0o600)
	if got := FilePath(); got != want {
		t.Errorf("FilePath = %q, want %q", got, want)
	}
}
