package relay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultContactAddress receives submissions when neither CONTACT_TO nor
// SMTP_FROM is set.
const DefaultContactAddress = "hello@folio.dev"

// DefaultSMTPPort is used when SMTP_PORT is unset.
const DefaultSMTPPort = 587

// Supported MAIL_PROVIDER values.
const (
	ProviderSMTP     = "smtp"
	ProviderResend   = "resend"
	ProviderPostmark = "postmark"
	ProviderLog      = "log"
)

// Settings is the delivery configuration for a single relay request.
type Settings struct {
	Provider string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	ResendAPIKey  string
	PostmarkToken string

	// From is the envelope sender, possibly with a display name.
	From string
	// To is the single destination mailbox.
	To string
}

// SettingsSource resolves delivery settings. Implementations are consulted on
// every request, so a broken configuration fails that request only.
type SettingsSource interface {
	Resolve() (*Settings, error)
}

// SettingsFunc adapts a function to SettingsSource.
type SettingsFunc func() (*Settings, error)

func (f SettingsFunc) Resolve() (*Settings, error) { return f() }

// ErrMissingSetting is wrapped by Resolve when a required variable is unset.
var ErrMissingSetting = errors.New("missing mail setting")

// EnvSettings reads delivery settings from the process environment.
type EnvSettings struct {
	v *viper.Viper
}

// NewEnvSettings returns a source backed by a private viper instance with
// AutomaticEnv, so every Resolve sees the current environment.
func NewEnvSettings() *EnvSettings {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("MAIL_PROVIDER", ProviderSMTP)
	v.SetDefault("SMTP_PORT", DefaultSMTPPort)

	return &EnvSettings{v: v}
}

// Resolve reads and checks the settings the selected provider needs.
// Errors name the missing variables, never their values.
func (e *EnvSettings) Resolve() (*Settings, error) {
	s := &Settings{
		Provider:      strings.ToLower(strings.TrimSpace(e.v.GetString("MAIL_PROVIDER"))),
		SMTPHost:      strings.TrimSpace(e.v.GetString("SMTP_HOST")),
		SMTPPort:      e.v.GetInt("SMTP_PORT"),
		SMTPUser:      e.v.GetString("SMTP_USER"),
		SMTPPass:      e.v.GetString("SMTP_PASS"),
		ResendAPIKey:  e.v.GetString("RESEND_API_KEY"),
		PostmarkToken: e.v.GetString("POSTMARK_API_TOKEN"),
	}

	smtpFrom := strings.TrimSpace(e.v.GetString("SMTP_FROM"))

	var missing []string
	switch s.Provider {
	case ProviderSMTP:
		if s.SMTPHost == "" {
			missing = append(missing, "SMTP_HOST")
		}
		if s.SMTPUser == "" {
			missing = append(missing, "SMTP_USER")
		}
		if s.SMTPPass == "" {
			missing = append(missing, "SMTP_PASS")
		}
		if s.SMTPPort <= 0 || s.SMTPPort > 65535 {
			return nil, fmt.Errorf("%w: SMTP_PORT must be a port number", ErrMissingSetting)
		}
	case ProviderResend:
		if s.ResendAPIKey == "" {
			missing = append(missing, "RESEND_API_KEY")
		}
	case ProviderPostmark:
		if s.PostmarkToken == "" {
			missing = append(missing, "POSTMARK_API_TOKEN")
		}
	case ProviderLog:
	default:
		return nil, fmt.Errorf("%w: unknown MAIL_PROVIDER %q", ErrMissingSetting, s.Provider)
	}

	s.From = smtpFrom
	if s.From == "" && s.SMTPUser != "" {
		s.From = fmt.Sprintf("%q <%s>", "Portfolio", s.SMTPUser)
	}
	if s.From == "" {
		if s.Provider != ProviderLog {
			missing = append(missing, "SMTP_FROM")
		} else {
			s.From = fmt.Sprintf("%q <%s>", "Portfolio", DefaultContactAddress)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(missing, ", "))
	}

	s.To = firstNonEmpty(e.v.GetString("CONTACT_TO"), smtpFrom, DefaultContactAddress)

	return s, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
