package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_Email(t *testing.T) {
	tests := []struct {
		email string
		code  Code // empty means valid
	}{
		{"", CodeRequired},
		{"plainaddress", CodeInvalidFormat},
		{"no-at.example.com", CodeInvalidFormat},
		{"user@localhost", CodeInvalidFormat},
		{"user@", CodeInvalidFormat},
		{"@example.com", CodeInvalidFormat},
		{"user name@example.com", CodeInvalidFormat},
		{"user@exa mple.com", CodeInvalidFormat},
		{"a@b@c.com", CodeInvalidFormat},
		{" ", CodeInvalidFormat},
		{"a@b.c", ""},
		{"first.last+tag@sub.example.co.uk", ""},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			errs := Validate(Draft{Email: tt.email, Message: "long enough message"})

			if tt.code == "" {
				assert.False(t, errs.Has(FieldEmail), "expected %q to be valid, got %v", tt.email, errs)
				return
			}
			if assert.True(t, errs.Has(FieldEmail)) {
				assert.Equal(t, tt.code, errs[FieldEmail].Code)
				assert.Equal(t, FieldEmail, errs[FieldEmail].Field)
			}
		})
	}
}

func TestValidate_EmailWithoutAtOrDotIsInvalidFormat(t *testing.T) {
	samples := []string{"x", "abc", "abc.def", "abc@def", "nodot@domain", "1234", "a.b.c", "@", "."}
	for _, s := range samples {
		errs := Validate(Draft{Email: s, Message: "long enough message"})
		if errs[FieldEmail].Code != CodeInvalidFormat {
			t.Errorf("email %q: expected InvalidFormat, got %q", s, errs[FieldEmail].Code)
		}
	}
}

func TestValidate_Message(t *testing.T) {
	tests := []struct {
		name    string
		message string
		code    Code
	}{
		{"empty", "", CodeRequired},
		{"whitespace only", "          ", CodeTooShort},
		{"nine chars", "123456789", CodeTooShort},
		{"nine chars padded", "   123456789   ", CodeTooShort},
		{"exactly ten", "1234567890", ""},
		{"ten padded", "\n 1234567890 \t", ""},
		{"ten multibyte", "éééééééééé", ""},
		{"long", strings.Repeat("hello ", 20), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(Draft{Email: "a@b.com", Message: tt.message})

			if tt.code == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.code, errs[FieldMessage].Code)
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	errs := Validate(Draft{})

	assert.Equal(t, "Email is required", errs[FieldEmail].Message)
	assert.Equal(t, "Message is required", errs[FieldMessage].Message)

	errs = Validate(Draft{Email: "bad", Message: "short"})
	assert.Equal(t, "Please enter a valid email address", errs[FieldEmail].Message)
	assert.Equal(t, "Message must be at least 10 characters", errs[FieldMessage].Message)
}

func TestValidate_NameIsNeverValidated(t *testing.T) {
	errs := Validate(Draft{Name: "", Email: "a@b.com", Message: "Hello there, friend."})
	assert.Empty(t, errs)

	errs = Validate(Draft{Name: "<<<>>>", Email: "a@b.com", Message: "Hello there, friend."})
	assert.Empty(t, errs)
}

func TestValidate_Idempotent(t *testing.T) {
	drafts := []Draft{
		{},
		{Email: "bad", Message: "short"},
		{Email: "a@b.com", Message: "short"},
		{Email: "a@b.com", Message: "Hello there, friend."},
	}

	for _, d := range drafts {
		first := Validate(d)
		second := Validate(d)
		assert.Equal(t, first, second)
	}
}

func TestErrors_FirstFollowsDeclarationOrder(t *testing.T) {
	errs := Validate(Draft{})

	assert.Equal(t, []Field{FieldEmail, FieldMessage}, errs.Fields())
	assert.Equal(t, FieldEmail, errs.First())
	assert.Equal(t, FieldNone, Errors{}.First())
	assert.Contains(t, errs.Error(), "email: Email is required")
}
