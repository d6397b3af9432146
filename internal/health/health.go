package health

import (
	"log/slog"
	"net/http"

	"github.com/heptiolabs/healthcheck"

	"github.com/dukerupert/folio/internal/relay"
)

// maxGoroutines trips liveness when request handling is leaking goroutines.
const maxGoroutines = 1000

// Checker exposes /live and /ready for the contact server.
type Checker struct {
	health   healthcheck.Handler
	settings relay.SettingsSource
	logger   *slog.Logger
}

// NewChecker registers liveness and readiness checks.
// Readiness fails while mail settings cannot be resolved; the relay keeps
// answering regardless.
func NewChecker(settings relay.SettingsSource, logger *slog.Logger) *Checker {
	c := &Checker{
		health:   healthcheck.NewHandler(),
		settings: settings,
		logger:   logger,
	}

	c.health.AddLivenessCheck("goroutines", healthcheck.GoroutineCountCheck(maxGoroutines))
	c.health.AddReadinessCheck("mail_settings", MailSettingsCheck(settings, logger))

	return c
}

// LiveHandler serves the liveness endpoint only.
func (c *Checker) LiveHandler() http.HandlerFunc {
	return c.health.LiveEndpoint
}

// ReadyHandler serves the readiness endpoint only.
func (c *Checker) ReadyHandler() http.HandlerFunc {
	return c.health.ReadyEndpoint
}

// MailSettingsCheck reports whether delivery settings currently resolve.
func MailSettingsCheck(settings relay.SettingsSource, logger *slog.Logger) healthcheck.Check {
	return func() error {
		if _, err := settings.Resolve(); err != nil {
			logger.Warn("readiness: mail settings unresolved", "error", err)
			return err
		}
		return nil
	}
}
