package email

import "fmt"

// ============================================================================
// EMAIL ERROR CODES
// ============================================================================
// These constants mirror domain error codes to avoid circular imports.

const (
	codeInternal = "internal"
	codeInvalid  = "invalid"
)

// ============================================================================
// EMAIL ERROR TYPE
// ============================================================================

// EmailError represents an email-specific error with a code and message.
type EmailError struct {
	Code    string
	Message string
}

func (e *EmailError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *EmailError) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the user-facing message.
func (e *EmailError) ErrorMessage() string {
	return e.Message
}

func newEmailError(code, message string) *EmailError {
	return &EmailError{Code: code, Message: message}
}

// ============================================================================
// EMAIL DOMAIN ERRORS
// ============================================================================

var (
	// ErrInvalidFromAddress is returned when the from address is missing or invalid.
	ErrInvalidFromAddress = newEmailError(codeInvalid, "Invalid from email address")

	// ErrInvalidToAddress is returned when no usable recipient is given.
	ErrInvalidToAddress = newEmailError(codeInvalid, "Invalid to email address")

	// ErrInvalidReplyTo is returned when the reply-to address cannot be parsed.
	ErrInvalidReplyTo = newEmailError(codeInvalid, "Invalid reply-to email address")
)

// ErrProviderRejected creates an error for a non-success provider response.
func ErrProviderRejected(provider string, status int, detail string) error {
	return &EmailError{
		Code:    codeInternal,
		Message: fmt.Sprintf("%s rejected message (status %d): %s", provider, status, detail),
	}
}
