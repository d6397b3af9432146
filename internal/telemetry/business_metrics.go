package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes recorded by the relay.
const (
	OutcomeSent          = "sent"
	OutcomeInvalid       = "invalid"
	OutcomeMethod        = "method_not_allowed"
	OutcomeConfigError   = "config_error"
	OutcomeDeliveryError = "delivery_error"
)

// ContactMetrics holds Prometheus metrics for the contact relay.
type ContactMetrics struct {
	// Every request that reached the relay, by outcome
	Submissions *prometheus.CounterVec

	// Successful deliveries by provider
	EmailSent *prometheus.CounterVec

	// Failed deliveries by provider and error code
	EmailFailed *prometheus.CounterVec

	// Provider round-trip latency (helps differentiate app slowness from provider issues)
	DeliveryLatency *prometheus.HistogramVec
}

// NewContactMetrics creates the contact metrics and registers them with reg.
// A nil reg uses the default Prometheus registerer.
func NewContactMetrics(namespace string, reg prometheus.Registerer) *ContactMetrics {
	if namespace == "" {
		namespace = "folio"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	subsystem := "contact"

	return &ContactMetrics{
		Submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "submissions_total",
				Help:      "Total contact submissions received",
			},
			[]string{"outcome"}, // outcome: sent, invalid, method_not_allowed, config_error, delivery_error
		),
		EmailSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "emails_sent_total",
				Help:      "Total contact emails accepted by the provider",
			},
			[]string{"provider"},
		),
		EmailFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "emails_failed_total",
				Help:      "Total contact email delivery failures",
			},
			[]string{"provider", "error_type"},
		),
		DeliveryLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "delivery_duration_seconds",
				Help:      "Time spent handing a message to the provider",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"provider"},
		),
	}
}

// RecordSubmission counts one relay request. Safe on a nil receiver.
func (m *ContactMetrics) RecordSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

// RecordDelivery records the provider result and latency. Safe on a nil receiver.
func (m *ContactMetrics) RecordDelivery(provider string, elapsed time.Duration, errorType string) {
	if m == nil {
		return
	}

	m.DeliveryLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
	if errorType == "" {
		m.EmailSent.WithLabelValues(provider).Inc()
		return
	}
	m.EmailFailed.WithLabelValues(provider, errorType).Inc()
}
