package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/voiceflow/transcript-web/internal/api"
	"github.com/voiceflow/transcript-web/internal/backend"
	"github.com/voiceflow/transcript-web/internal/certs"
	"github.com/voiceflow/transcript-web/internal/codec"
	"github.com/voiceflow/transcript-web/internal/config"
	"github.com/voiceflow/transcript-web/internal/i18n"
	"github.com/voiceflow/transcript-web/internal/logging"
	"github.com/voiceflow/transcript-web/internal/theme"
	"github.com/voiceflow/transcript-web/internal/version"
)

const (
	shutdownTimeout = 10 * time.Second
	certWarnBefore  = 30 * 24 * time.Hour
)

func main() {
	var configPath string
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Serve the transcript web client",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	cmd.SetVersionTemplate(version.Full("server") + "\n")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.toml (default $TRANSCRIPT_CONFIG or $XDG_CONFIG_HOME/transcript-web/config.toml)")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := logging.New(cfg.LoggingOptions())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Close()

	wireVersion, err := codec.ParseVersion(cfg.EnvelopeVersion)
	if err != nil {
		return err
	}
	prefs, err := theme.NewStore(cfg.SessionSecret, cfg.CookieSecure)
	if err != nil {
		return fmt.Errorf("initializing cookie store: %w", err)
	}
	var adminURL *url.URL
	if cfg.AdminURL != "" {
		if adminURL, err = url.Parse(cfg.AdminURL); err != nil {
			return fmt.Errorf("admin_url: %w", err)
		}
	}

	client := backend.New(cfg.BackendURL, cfg.RequestTimeout, logger.Logger)
	router := api.NewRouter(&api.Server{
		Meetings:  client,
		Validator: client,
		Codec:     codec.New(codec.WithLogger(logger.Logger), codec.WithVersion(wireVersion)),
		Prefs:     prefs,
		Catalog:   i18n.New(cfg.DefaultLocale),
		StaticDir: cfg.StaticDir,
		AdminURL:  adminURL,
		Logger:    logger.Logger,
	})

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if cfg.TLS.Enabled() {
		cm := certs.NewCertManager(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		cert, err := cm.Check(time.Now())
		if err != nil {
			return err
		}
		if certs.ExpiresWithin(cert, certWarnBefore, time.Now()) {
			logger.Warn("TLS certificate expires soon", "file", cfg.TLS.CertFile, "not_after", cert.NotAfter)
		}
		if srv.TLSConfig, err = cm.TLSConfig(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", cfg.Listen, "tls", cfg.TLS.Enabled(), "backend", cfg.BackendURL)
		if srv.TLSConfig != nil {
			errCh <- srv.ListenAndServeTLS("", "")
		} else {
			errCh <- srv.ListenAndServe()
		}
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
