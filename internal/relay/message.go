package relay

import (
	"bytes"
	"fmt"
	"html/template"
	"net/mail"
	"strings"

	"github.com/dukerupert/folio/internal/email"
)

// FallbackName replaces a blank or missing sender name.
const FallbackName = "Website visitor"

// Submission is a payload that passed the relay's shape checks.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// Message is the outbound notification built from a Submission.
type Message struct {
	SenderName string
	ReplyTo    string
	Subject    string
	Text       string
	HTML       string
}

var htmlBody = template.Must(template.New("contact").Parse(`<div>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>From:</strong> {{.Email}}</p>
  <hr />
  <p>{{range $i, $line := .Lines}}{{if $i}}<br/>{{end}}{{$line}}{{end}}</p>
</div>
`))

// NormalizeName trims the name, substituting FallbackName when it is blank.
func NormalizeName(name string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return FallbackName
}

// BuildMessage renders the subject and bodies for sub.
// The HTML body escapes everything the visitor typed. ReplyTo is left empty
// when the visitor's address is not a valid RFC 5322 address; the address
// still appears in both bodies.
func BuildMessage(sub Submission) (*Message, error) {
	name := NormalizeName(sub.Name)

	var buf bytes.Buffer
	err := htmlBody.Execute(&buf, struct {
		Name  string
		Email string
		Lines []string
	}{
		Name:  name,
		Email: sub.Email,
		Lines: strings.Split(sub.Message, "\n"),
	})
	if err != nil {
		return nil, fmt.Errorf("render contact html: %w", err)
	}

	return &Message{
		SenderName: name,
		ReplyTo:    replyAddress(sub.Email),
		Subject:    "Portfolio contact from " + name,
		Text:       fmt.Sprintf("Name: %s\nFrom: %s\n\nMessage:\n%s", name, sub.Email, sub.Message),
		HTML:       buf.String(),
	}, nil
}

// replyAddress returns addr when mail transports will accept it as Reply-To.
func replyAddress(addr string) string {
	if _, err := mail.ParseAddress(addr); err != nil {
		return ""
	}
	return addr
}

// Email addresses the message for delivery.
func (m *Message) Email(from, to string) *email.Email {
	return &email.Email{
		To:       []string{to},
		From:     from,
		ReplyTo:  m.ReplyTo,
		Subject:  m.Subject,
		TextBody: m.Text,
		HTMLBody: m.HTML,
		Headers: map[string]string{
			"X-Folio-Source": "contact-form",
		},
	}
}
