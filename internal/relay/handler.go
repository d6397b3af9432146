package relay

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/dukerupert/folio/internal/domain"
	"github.com/dukerupert/folio/internal/handler"
	"github.com/dukerupert/folio/internal/middleware"
	"github.com/dukerupert/folio/internal/telemetry"
)

// Handler is the contact mail relay. It is stateless: settings and the
// transport are resolved again for every request.
type Handler struct {
	settings  SettingsSource
	newSender SenderFactory
	metrics   *telemetry.ContactMetrics
	logger    *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithSenderFactory overrides how transports are built.
func WithSenderFactory(f SenderFactory) Option {
	return func(h *Handler) { h.newSender = f }
}

// WithMetrics records submission outcomes and delivery latency.
func WithMetrics(m *telemetry.ContactMetrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithLogger sets the logger used when the request carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// NewHandler creates a relay reading delivery settings from settings.
func NewHandler(settings SettingsSource, opts ...Option) *Handler {
	h := &Handler{
		settings:  settings,
		newSender: NewSender,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP handles POST /api/contact. Every outcome is a JSON
// {"ok":...} body; at most one delivery is attempted.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "relay.ServeHTTP"
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	if r.Method != http.MethodPost {
		h.metrics.RecordSubmission(telemetry.OutcomeMethod)
		handler.MethodNotAllowedResponse(w, r, http.MethodPost)
		return
	}

	sub, err := decodeSubmission(r.Body)
	if err != nil {
		h.metrics.RecordSubmission(telemetry.OutcomeInvalid)
		handler.ErrorResponse(w, r, err)
		return
	}

	settings, err := h.settings.Resolve()
	if err != nil {
		h.configFailure(w, r, err)
		return
	}

	msg, err := BuildMessage(sub)
	if err != nil {
		h.metrics.RecordSubmission(telemetry.OutcomeDeliveryError)
		handler.InternalErrorResponse(w, r, err)
		return
	}

	if msg.ReplyTo == "" {
		logger.Warn("contact: visitor address unusable as reply-to, sending without it")
	}

	sender, err := h.newSender(settings, logger)
	if err != nil {
		h.configFailure(w, r, err)
		return
	}

	telemetry.AddBreadcrumb(ctx, "mail", "relaying contact message", map[string]any{
		"provider": settings.Provider,
	})
	spanCtx, finish := telemetry.StartSpan(ctx, "mail.send", settings.Provider)

	start := time.Now()
	messageID, err := sender.Send(spanCtx, msg.Email(settings.From, settings.To))
	elapsed := time.Since(start)
	finish()

	if err != nil {
		h.metrics.RecordDelivery(settings.Provider, elapsed, domain.EDELIVERY)
		h.metrics.RecordSubmission(telemetry.OutcomeDeliveryError)
		telemetry.CaptureErrorFromContext(ctx, err,
			map[string]string{"provider": settings.Provider, "component": "relay"},
			map[string]any{"duration_ms": elapsed.Milliseconds()},
		)
		handler.ErrorResponse(w, r, domain.Delivery(err, op, MsgDelivery))
		return
	}

	h.metrics.RecordDelivery(settings.Provider, elapsed, "")
	h.metrics.RecordSubmission(telemetry.OutcomeSent)
	logger.Info("contact message relayed",
		"provider", settings.Provider,
		"message_id", messageID,
		"duration", elapsed,
	)

	handler.OK(w)
}

// configFailure reports a settings problem. Only the variable names reach
// the log, the caller sees a generic message.
func (h *Handler) configFailure(w http.ResponseWriter, r *http.Request, err error) {
	h.metrics.RecordSubmission(telemetry.OutcomeConfigError)
	telemetry.CaptureMessage(r.Context(), "mail relay misconfigured: "+err.Error(), sentry.LevelError,
		map[string]string{"component": "relay"},
	)
	handler.ErrorResponse(w, r, domain.Configuration(err, "relay.resolveSettings", MsgConfiguration))
}
