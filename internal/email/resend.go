package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// ResendSender implements Sender using the Resend API.
type ResendSender struct {
	client *resend.Client
	logger *slog.Logger
}

// NewResendSenderWithClient wraps an already configured Resend client.
func NewResendSenderWithClient(client *resend.Client, logger *slog.Logger) *ResendSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResendSender{client: client, logger: logger}
}

// Send sends an email through Resend and returns the Resend email ID.
func (s *ResendSender) Send(ctx context.Context, email *Email) (string, error) {
	if err := email.validate(); err != nil {
		return "", err
	}

	params := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
		Headers: email.Headers,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		s.logger.Error("resend: failed to send email", "error", err, "to", email.To)
		return "", fmt.Errorf("resend send failed: %w", err)
	}

	s.logger.Info("resend: email sent", "to", email.To, "id", sent.Id)
	return sent.Id, nil
}
