package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dukerupert/folio/internal"
	"github.com/dukerupert/folio/internal/health"
	"github.com/dukerupert/folio/internal/middleware"
	"github.com/dukerupert/folio/internal/relay"
	"github.com/dukerupert/folio/internal/router"
	"github.com/dukerupert/folio/internal/routes"
	"github.com/dukerupert/folio/internal/telemetry"
)

const shutdownTimeout = 15 * time.Second

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)
	logger.Info("Starting folio contact server", "env", cfg.Env, "port", cfg.Port)

	// Initialize Sentry
	flushSentry, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer flushSentry()

	// Mail settings are resolved per request; a bad config only fails readiness
	settings := relay.NewEnvSettings()
	if _, err := settings.Resolve(); err != nil {
		logger.Warn("Mail settings incomplete, contact submissions will fail until fixed", "error", err)
	}

	// Metrics
	var (
		httpMetrics    *middleware.Metrics
		contactMetrics *telemetry.ContactMetrics
	)
	if cfg.MetricsEnabled {
		httpMetrics = middleware.NewMetrics("folio", nil)
		contactMetrics = telemetry.NewContactMetrics("folio", nil)
	}

	relayHandler := relay.NewHandler(settings,
		relay.WithLogger(logger),
		relay.WithMetrics(contactMetrics),
	)
	checker := health.NewChecker(settings, logger)

	// Configure security headers
	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		securityConfig.HSTSMaxAge = 0 // No HSTS over plain http in development
	}

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	chain := []router.Middleware{
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithClientIP(),
		middleware.WithRequestLogger(logger),
		telemetry.SentryMiddleware(),
	}
	if httpMetrics != nil {
		chain = append(chain, httpMetrics.Middleware)
	}
	chain = append(chain,
		middleware.SecurityHeaders(securityConfig),
		router.CORS(cfg.AllowedOrigins),
		router.Logger(logger),
	)

	r := router.New(chain...)

	routes.RegisterContactRoutes(r, routes.ContactDeps{
		Relay:     relayHandler,
		PublicDir: cfg.PublicDir,
	})

	opsDeps := routes.OpsDeps{
		Live:  checker.LiveHandler(),
		Ready: checker.ReadyHandler(),
	}
	if httpMetrics != nil {
		opsDeps.Metrics = httpMetrics.Handler()
	}
	routes.RegisterOpsRoutes(r, opsDeps)

	// ==========================================================================
	// Start server
	// ==========================================================================

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("Starting HTTP server", "address", srv.Addr, "public_dir", cfg.PublicDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
