package email

import "context"

// Email represents an email message to be sent.
type Email struct {
	To       []string          // Recipient email addresses
	From     string            // Sender address, optionally "Name <addr>"
	ReplyTo  string            // Address replies should go to (optional)
	Subject  string            // Email subject
	TextBody string            // Plain text body
	HTMLBody string            // HTML body (optional)
	Headers  map[string]string // Custom headers (optional)
}

// Sender defines the interface for sending emails.
// Implementations exist for SMTP, Resend, Postmark and a logging sender for development.
type Sender interface {
	// Send sends an email message.
	// Returns the message ID from the email provider (if available).
	Send(ctx context.Context, email *Email) (string, error)
}

// validate checks the fields every provider needs.
func (e *Email) validate() error {
	if e.From == "" {
		return ErrInvalidFromAddress
	}
	if len(e.To) == 0 {
		return ErrInvalidToAddress
	}
	for _, to := range e.To {
		if to == "" {
			return ErrInvalidToAddress
		}
	}
	return nil
}
