package email

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/mail"
	"strconv"
	"sync"
	"testing"
	"time"

	gosmtp "github.com/emersion/go-smtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// IN-PROCESS SMTP SERVER
// =============================================================================

type receivedMail struct {
	from string
	to   []string
	data []byte
}

type recordingBackend struct {
	mu       sync.Mutex
	received []receivedMail
}

func (b *recordingBackend) NewSession(_ *gosmtp.Conn) (gosmtp.Session, error) {
	return &recordingSession{backend: b}, nil
}

func (b *recordingBackend) messages() []receivedMail {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]receivedMail(nil), b.received...)
}

type recordingSession struct {
	backend *recordingBackend
	current receivedMail
}

func (s *recordingSession) Mail(from string, _ *gosmtp.MailOptions) error {
	s.current.from = from
	return nil
}

func (s *recordingSession) Rcpt(to string, _ *gosmtp.RcptOptions) error {
	s.current.to = append(s.current.to, to)
	return nil
}

func (s *recordingSession) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.current.data = data

	s.backend.mu.Lock()
	s.backend.received = append(s.backend.received, s.current)
	s.backend.mu.Unlock()
	return nil
}

func (s *recordingSession) Reset() {
	s.current = receivedMail{}
}

func (s *recordingSession) Logout() error {
	return nil
}

func startSMTPServer(t *testing.T) (*recordingBackend, string, int) {
	t.Helper()

	backend := &recordingBackend{}
	server := gosmtp.NewServer(backend)
	server.Domain = "localhost"
	server.ReadTimeout = 5 * time.Second
	server.WriteTimeout = 5 * time.Second

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		_ = server.Serve(l)
	}()
	t.Cleanup(func() { _ = server.Close() })

	host, portStr, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return backend, host, port
}

// =============================================================================
// TESTS
// =============================================================================

func TestSMTPSender_Send_DeliversMessage(t *testing.T) {
	backend, host, port := startSMTPServer(t)

	sender := NewSMTPSender(&SMTPConfig{
		Host:    host,
		Port:    port,
		From:    `"Portfolio" <site@example.com>`,
		Timeout: 5 * time.Second,
	}, nil)

	id, err := sender.Send(context.Background(), &Email{
		To:       []string{"owner@example.com"},
		ReplyTo:  "a@b.com",
		Subject:  "Portfolio contact from Website visitor",
		TextBody: "Name: Website visitor\nFrom: a@b.com\n\nMessage:\nHello there, I am interested.",
		HTMLBody: "<p>Hello there, I am interested.</p>",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	msgs := backend.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "site@example.com", msgs[0].from)
	assert.Equal(t, []string{"owner@example.com"}, msgs[0].to)

	parsed, err := mail.ReadMessage(bytes.NewReader(msgs[0].data))
	require.NoError(t, err)
	assert.Equal(t, "Portfolio contact from Website visitor", parsed.Header.Get("Subject"))
	assert.Contains(t, parsed.Header.Get("Reply-To"), "a@b.com")
}

func TestSMTPSender_Send_RejectsMissingRecipient(t *testing.T) {
	sender := NewSMTPSender(&SMTPConfig{Host: "127.0.0.1", Port: 2525, From: "site@example.com"}, nil)

	_, err := sender.Send(context.Background(), &Email{Subject: "hi", TextBody: "hi"})

	assert.ErrorIs(t, err, ErrInvalidToAddress)
}

func TestSMTPSender_Send_RejectsMissingFrom(t *testing.T) {
	sender := NewSMTPSender(&SMTPConfig{Host: "127.0.0.1", Port: 2525}, nil)

	_, err := sender.Send(context.Background(), &Email{To: []string{"owner@example.com"}})

	assert.ErrorIs(t, err, ErrInvalidFromAddress)
}

func TestSMTPSender_Send_ConnectionRefused(t *testing.T) {
	// Grab a free port, then close it so nothing is listening.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	sender := NewSMTPSender(&SMTPConfig{
		Host:    "127.0.0.1",
		Port:    port,
		From:    "site@example.com",
		Timeout: 2 * time.Second,
	}, nil)

	_, err = sender.Send(context.Background(), &Email{
		To:       []string{"owner@example.com"},
		Subject:  "hi",
		TextBody: "hi",
	})

	assert.Error(t, err)
}

func TestSMTPSender_TestConnection(t *testing.T) {
	_, host, port := startSMTPServer(t)

	sender := NewSMTPSender(&SMTPConfig{Host: host, Port: port, From: "site@example.com"}, nil)

	assert.NoError(t, sender.TestConnection(context.Background()))
}

func TestClientOptions_TLSByPort(t *testing.T) {
	// Auth options are only appended when both credentials are present.
	base := len(clientOptions(25, time.Second, "", ""))

	assert.Equal(t, base, len(clientOptions(465, time.Second, "", "")))
	assert.Equal(t, base, len(clientOptions(587, time.Second, "user", "")))
	assert.Equal(t, base+3, len(clientOptions(587, time.Second, "user", "pass")))
}
