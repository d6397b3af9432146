package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "message only",
			err: &Error{
				Code:    EINVALID,
				Message: "Invalid payload.",
			},
			expected: "Invalid payload.",
		},
		{
			name: "with operation",
			err: &Error{
				Code:    EINVALID,
				Op:      "relay.decode",
				Message: "Invalid payload.",
			},
			expected: "relay.decode: Invalid payload.",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EDELIVERY,
				Op:      "relay.deliver",
				Message: "Failed to send email.",
				Err:     errors.New("535 authentication failed"),
			},
			expected: "relay.deliver: Failed to send email.: 535 authentication failed",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EDELIVERY,
				Message: "Failed to send email.",
				Err:     errors.New("dial tcp: timeout"),
			},
			expected: "Failed to send email.: dial tcp: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Code:    EINTERNAL,
		Message: "wrapped",
		Err:     underlying,
	}

	if unwrapped := err.Unwrap(); unwrapped != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", unwrapped, underlying)
	}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "domain error",
			err:      &Error{Code: EINVALID, Message: "test"},
			expected: EINVALID,
		},
		{
			name:     "wrapped domain error",
			err:      fmt.Errorf("wrapped: %w", &Error{Code: ECONFIG, Message: "test"}),
			expected: ECONFIG,
		},
		{
			name:     "non-domain error",
			err:      errors.New("some error"),
			expected: EINTERNAL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "domain error with message",
			err:      &Error{Code: EINVALID, Message: "Email and message are required."},
			expected: "Email and message are required.",
		},
		{
			name:     "configuration error keeps its generic message",
			err:      Configuration(errors.New("SMTP_PASS not set"), "relay.settings", "Server email configuration error."),
			expected: "Server email configuration error.",
		},
		{
			name:     "delivery error keeps its generic message",
			err:      Delivery(errors.New("550 mailbox unavailable"), "relay.deliver", "Failed to send email."),
			expected: "Failed to send email.",
		},
		{
			name:     "internal error hides message",
			err:      &Error{Code: EINTERNAL, Message: "smtp password leaked"},
			expected: "An internal error occurred. Please try again later.",
		},
		{
			name:     "empty message falls back to generic",
			err:      &Error{Code: EDELIVERY},
			expected: "An internal error occurred. Please try again later.",
		},
		{
			name:     "non-domain error returns generic message",
			err:      errors.New("some internal detail"),
			expected: "An internal error occurred. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorOp(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "domain error with op",
			err:      &Error{Code: EINVALID, Op: "relay.decode", Message: "test"},
			expected: "relay.decode",
		},
		{
			name:     "domain error without op",
			err:      &Error{Code: EINVALID, Message: "test"},
			expected: "",
		},
		{
			name:     "non-domain error",
			err:      errors.New("test"),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorOp(tt.err); got != tt.expected {
				t.Errorf("ErrorOp() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(EINVALID, "relay.decode", "unexpected type for %s", "email")

	var domainErr *Error
	if !errors.As(err, &domainErr) {
		t.Fatal("Errorf should return *Error")
	}

	if domainErr.Code != EINVALID {
		t.Errorf("Code = %q, want %q", domainErr.Code, EINVALID)
	}

	if domainErr.Op != "relay.decode" {
		t.Errorf("Op = %q, want %q", domainErr.Op, "relay.decode")
	}

	if domainErr.Message != "unexpected type for email" {
		t.Errorf("Message = %q, want %q", domainErr.Message, "unexpected type for email")
	}
}

func TestDelivery(t *testing.T) {
	underlying := errors.New("connection refused")
	err := Delivery(underlying, "relay.deliver", "Failed to send email.")

	var domainErr *Error
	if !errors.As(err, &domainErr) {
		t.Fatal("Delivery should return *Error")
	}

	if domainErr.Code != EDELIVERY {
		t.Errorf("Code = %q, want %q", domainErr.Code, EDELIVERY)
	}

	if !errors.Is(err, underlying) {
		t.Error("should wrap underlying error")
	}

	if got := ErrorMessage(err); got != "Failed to send email." {
		t.Errorf("ErrorMessage() = %q, want the user-facing message", got)
	}
}
