package email

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogSender writes messages to the logger instead of delivering them.
// Useful in development when no mail server is around.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that only logs.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the message and returns a random ID.
func (s *LogSender) Send(ctx context.Context, email *Email) (string, error) {
	if err := email.validate(); err != nil {
		return "", err
	}

	id := "log-" + uuid.NewString()
	s.logger.InfoContext(ctx, "log: email not delivered",
		"id", id,
		"to", email.To,
		"from", email.From,
		"reply_to", email.ReplyTo,
		"subject", email.Subject,
		"text", email.TextBody,
	)
	return id, nil
}
