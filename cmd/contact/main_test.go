package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/folio/internal/email"
	"github.com/dukerupert/folio/internal/form"
	"github.com/dukerupert/folio/internal/relay"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func relayServer(t *testing.T, sender email.Sender) *httptest.Server {
	t.Helper()

	settings := relay.SettingsFunc(func() (*relay.Settings, error) {
		return &relay.Settings{Provider: relay.ProviderLog, From: "site@example.com", To: "owner@example.com"}, nil
	})
	h := relay.NewHandler(settings,
		relay.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		relay.WithSenderFactory(func(*relay.Settings, *slog.Logger) (email.Sender, error) {
			return sender, nil
		}),
	)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestSend_InvalidDraftPrintsFieldErrors(t *testing.T) {
	out, err := run(t, "send", "--endpoint", "http://127.0.0.1:1/api/contact", "--email", "nope", "--message", "short")

	require.Error(t, err)
	assert.Contains(t, out, "Please enter a valid email address")
	assert.Contains(t, out, "Message must be at least 10 characters")
	assert.Contains(t, out, "focus: email")
}

func TestSend_Success(t *testing.T) {
	sender := email.NewMockSender()
	srv := relayServer(t, sender)

	out, err := run(t, "send",
		"--endpoint", srv.URL,
		"--name", "  Ada  ",
		"--email", "ada@example.com",
		"--message", "Hello, I would like to work together.",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "Message sent")

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@example.com", sent[0].ReplyTo)
	assert.Contains(t, sent[0].Subject, "Ada")
}

func TestSend_MessageFromStdin(t *testing.T) {
	sender := email.NewMockSender()
	srv := relayServer(t, sender)

	t.Chdir(t.TempDir())
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(bytes.NewBufferString("Piped in from another program.\n"))
	cmd.SetArgs([]string{"send", "--endpoint", srv.URL, "--email", "ada@example.com", "--message", "-"})

	require.NoError(t, cmd.Execute())
	require.Len(t, sender.Sent(), 1)
	assert.Contains(t, sender.Sent()[0].TextBody, "Piped in from another program.")
}

func TestSend_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out, err := run(t, "send", "--endpoint", url, "--email", "ada@example.com", "--message", "Hello there, long enough.")

	require.Error(t, err)
	assert.Contains(t, out, "Network error")
}

func TestCheckSMTP_NonSMTPProvider(t *testing.T) {
	t.Setenv("MAIL_PROVIDER", "log")
	t.Setenv("CONTACT_TO", "owner@example.com")

	out, err := run(t, "check-smtp")

	require.NoError(t, err)
	assert.Contains(t, out, "provider: log")
	assert.Contains(t, out, "to:       owner@example.com")
	assert.Contains(t, out, "nothing to dial")
}

func TestCheckSMTP_MissingSettings(t *testing.T) {
	t.Setenv("MAIL_PROVIDER", "smtp")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_USER", "")
	t.Setenv("SMTP_PASS", "")

	_, err := run(t, "check-smtp")

	require.Error(t, err)
	assert.ErrorIs(t, err, relay.ErrMissingSetting)
}

func TestAnimation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(form.AnimationPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"v":"5.7.4","layers":[]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	out, err := run(t, "animation", "--base-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "animation ok")

	srv404 := httptest.NewServer(http.NotFoundHandler())
	defer srv404.Close()

	out, err = run(t, "animation", "--base-url", srv404.URL)
	require.Error(t, err)
	assert.Contains(t, out, form.AnimationPlaceholder)
}
