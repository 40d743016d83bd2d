package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/voiceflow/transcript-web/internal/codec"
	"github.com/voiceflow/transcript-web/internal/logging"
)

// Config holds the server configuration.
type Config struct {
	Listen          string        `toml:"listen"`
	BackendURL      string        `toml:"backend_url"`
	AdminURL        string        `toml:"admin_url"`
	StaticDir       string        `toml:"static_dir"`
	SessionSecret   string        `toml:"session_secret"`
	CookieSecure    bool          `toml:"cookie_secure"`
	DefaultLocale   string        `toml:"default_locale"`
	RequestTimeout  time.Duration `toml:"request_timeout"`
	EnvelopeVersion string        `toml:"envelope_version"`
	Log             LogConfig     `toml:"log"`
	TLS             TLSConfig     `toml:"tls"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

type TLSConfig struct {
	CertFile string `toml:"cert_file"`
	KeyFile  string `toml:"key_file"`
}

// Enabled reports whether both certificate and key are configured.
func (t TLSConfig) Enabled() bool { return t.CertFile != "" && t.KeyFile != "" }

// LoggingOptions converts the log section for logging.New.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{Level: c.Log.Level, Format: c.Log.Format, File: c.Log.File}
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Listen:          ":8080",
		BackendURL:      "http://localhost:8000",
		AdminURL:        "http://localhost:4000/admin",
		StaticDir:       "web",
		CookieSecure:    true,
		DefaultLocale:   "ru",
		RequestTimeout:  15 * time.Second,
		EnvelopeVersion: "v1",
		Log:             LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration from defaults, then the TOML file at path (or
// the first file found by FilePath when path is empty), then environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = FilePath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FilePath returns $TRANSCRIPT_CONFIG, or the XDG config file if it exists, or "".
func FilePath() string {
	if p := os.Getenv("TRANSCRIPT_CONFIG"); p != "" {
		return p
	}
	var dir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dir = filepath.Join(xdg, "transcript-web")
	} else if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".config", "transcript-web")
	} else {
		return ""
	}
	p := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

func applyEnvOverrides(cfg *Config) error {
	strs := map[string]*string{
		"TRANSCRIPT_LISTEN":           &cfg.Listen,
		"TRANSCRIPT_BACKEND_URL":      &cfg.BackendURL,
		"TRANSCRIPT_ADMIN_URL":        &cfg.AdminURL,
		"TRANSCRIPT_STATIC_DIR":       &cfg.StaticDir,
		"TRANSCRIPT_SESSION_SECRET":   &cfg.SessionSecret,
		"TRANSCRIPT_DEFAULT_LOCALE":   &cfg.DefaultLocale,
		"TRANSCRIPT_ENVELOPE_VERSION": &cfg.EnvelopeVersion,
		"TRANSCRIPT_LOG_LEVEL":        &cfg.Log.Level,
		"TRANSCRIPT_LOG_FORMAT":       &cfg.Log.Format,
		"TRANSCRIPT_LOG_FILE":         &cfg.Log.File,
		"TRANSCRIPT_TLS_CERT_FILE":    &cfg.TLS.CertFile,
		"TRANSCRIPT_TLS_KEY_FILE":     &cfg.TLS.KeyFile,
	}
	for env, dst := range strs {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("TRANSCRIPT_COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRANSCRIPT_COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = b
	}
	if v := os.Getenv("TRANSCRIPT_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TRANSCRIPT_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

// Validate checks the configuration and normalizes URLs.
func (c *Config) Validate() error {
	var errs []error
	if c.Listen == "" {
		errs = append(errs, errors.New("listen address is required"))
	}
	for name, raw := range map[string]*string{"backend_url": &c.BackendURL, "admin_url": &c.AdminURL} {
		if *raw == "" {
			if name == "backend_url" {
				errs = append(errs, errors.New("backend_url is required"))
			}
			continue
		}
		u, err := url.Parse(*raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s %q is not an http(s) URL", name, *raw))
			continue
		}
		*raw = strings.TrimRight(*raw, "/")
	}
	if len(c.SessionSecret) < 32 {
		errs = append(errs, errors.New("session_secret must be at least 32 characters"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request_timeout must be positive"))
	}
	if _, err := codec.ParseVersion(c.EnvelopeVersion); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("tls cert_file and key_file must be set together"))
	}
	return errors.Join(errs...)
}
