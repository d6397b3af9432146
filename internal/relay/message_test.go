package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"

	"github.com/dukerupert/folio/internal/form"
)

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"":             FallbackName,
		"   ":          FallbackName,
		"\t\n":         FallbackName,
		" Grace ":      "Grace",
		"Grace Hopper": "Grace Hopper",
	}

	for in, want := range tests {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildMessage(t *testing.T) {
	msg, err := BuildMessage(Submission{
		Name:    "Grace",
		Email:   "grace@example.com",
		Message: "Line one\nLine two",
	})
	require.NoError(t, err)

	assert.Equal(t, "Grace", msg.SenderName)
	assert.Equal(t, "grace@example.com", msg.ReplyTo)
	assert.Equal(t, "Portfolio contact from Grace", msg.Subject)
	assert.Equal(t, "Name: Grace\nFrom: grace@example.com\n\nMessage:\nLine one\nLine two", msg.Text)
	assert.Contains(t, msg.HTML, "<strong>Name:</strong> Grace")
	assert.Contains(t, msg.HTML, "Line one<br/>Line two")
}

func TestBuildMessage_EscapesHTML(t *testing.T) {
	msg, err := BuildMessage(Submission{
		Name:    `<b>Mallory</b>`,
		Email:   "m@example.com",
		Message: `<script>alert("x")</script>`,
	})
	require.NoError(t, err)

	assert.NotContains(t, msg.HTML, "<script>")
	assert.NotContains(t, msg.HTML, "<b>Mallory</b>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
	// Plain text is sent as-is
	assert.Contains(t, msg.Text, `<script>alert("x")</script>`)
}

func TestMessage_Email(t *testing.T) {
	msg, err := BuildMessage(Submission{Email: "a@b.com", Message: "Hello there, I am interested."})
	require.NoError(t, err)

	e := msg.Email(`"Portfolio" <me@example.com>`, "owner@example.com")

	assert.Equal(t, []string{"owner@example.com"}, e.To)
	assert.Equal(t, `"Portfolio" <me@example.com>`, e.From)
	assert.Equal(t, "a@b.com", e.ReplyTo)
	assert.Equal(t, "Portfolio contact from Website visitor", e.Subject)
	assert.NotEmpty(t, e.TextBody)
	assert.NotEmpty(t, e.HTMLBody)
}

func TestBuildMessage_ReplyToOnlyWhenTransportsAcceptIt(t *testing.T) {
	tests := []struct {
		addr        string
		wantReplyTo bool
	}{
		{"grace@example.com", true},
		{"first.last+tag@sub.example.co.uk", true},
		{"a,b@c.de", false},
		{"a(b@c.de", false},
		{`a"b@c.de`, false},
		{"a<b@c.de", false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			// Every address here gets past the form's own checks.
			require.Empty(t, form.Validate(form.Draft{Email: tt.addr, Message: "Hello there, friend."}))

			msg, err := BuildMessage(Submission{Email: tt.addr, Message: "Hello there, friend."})
			require.NoError(t, err)

			assert.Contains(t, msg.Text, "From: "+tt.addr)

			if !tt.wantReplyTo {
				assert.Empty(t, msg.ReplyTo)
				return
			}
			assert.Equal(t, tt.addr, msg.ReplyTo)
			assert.NoError(t, gomail.NewMsg().ReplyTo(msg.ReplyTo))
		})
	}
}
