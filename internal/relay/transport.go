package relay

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/dukerupert/folio/internal/email"
	"github.com/dukerupert/folio/internal/telemetry"
)

// deliveryTimeout bounds one provider round trip.
const deliveryTimeout = 30 * time.Second

// SenderFactory builds the transport for resolved settings.
type SenderFactory func(s *Settings, logger *slog.Logger) (email.Sender, error)

// NewSender builds a fresh sender for the configured provider.
// HTTP providers go through a traced client.
func NewSender(s *Settings, logger *slog.Logger) (email.Sender, error) {
	switch s.Provider {
	case ProviderSMTP:
		return email.NewSMTPSender(&email.SMTPConfig{
			Host:     s.SMTPHost,
			Port:     s.SMTPPort,
			Username: s.SMTPUser,
			Password: s.SMTPPass,
			From:     s.From,
			Timeout:  deliveryTimeout,
		}, logger), nil
	case ProviderResend:
		client := resend.NewCustomClient(telemetry.NewHTTPClient(deliveryTimeout), s.ResendAPIKey)
		return email.NewResendSenderWithClient(client, logger), nil
	case ProviderPostmark:
		return email.NewPostmarkSender(s.PostmarkToken, logger).
			WithHTTPClient(telemetry.NewHTTPClient(deliveryTimeout)), nil
	case ProviderLog:
		return email.NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown MAIL_PROVIDER %q", ErrMissingSetting, s.Provider)
	}
}
