package domain

import (
	"errors"
	"fmt"
)

// Application error codes.
// These map to HTTP status codes and determine user-facing messages.
const (
	EINVALID  = "invalid"            // 400 - Malformed or incomplete submission
	ENOTFOUND = "not_found"          // 404 - Route or asset not found
	EMETHOD   = "method_not_allowed" // 405 - Wrong HTTP verb
	ETOOLARGE = "too_large"          // 413 - Request body over the limit
	ECONFIG   = "configuration"      // 500 - Delivery settings missing
	EDELIVERY = "delivery"           // 500 - Mail transport rejected the message
	EINTERNAL = "internal"           // 500 - Internal server error (hide details)
)

// internalMessage is shown in place of any EINTERNAL or unknown error.
const internalMessage = "An internal error occurred. Please try again later."

// Error represents an application error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	// Code is a machine-readable error code (e.g., EINVALID, EDELIVERY).
	Code string

	// Message is a human-readable error message safe to show to users.
	Message string

	// Op is the operation where the error occurred (e.g., "relay.deliver").
	// Used for debugging and logging, not shown to users.
	Op string

	// Err is the underlying error, if any. Never shown to users.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the error code from an error.
// Returns EINTERNAL for nil or non-domain errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return EINTERNAL
}

// ErrorMessage extracts a user-facing message from an error.
// For internal errors, returns a generic message to avoid leaking details.
// ECONFIG and EDELIVERY messages are authored to be generic, so they pass through.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Code == EINTERNAL || e.Message == "" {
			return internalMessage
		}
		return e.Message
	}

	return internalMessage
}

// ErrorOp extracts the operation from an error (for logging).
func ErrorOp(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}

	return ""
}

// Errorf creates a new domain error with formatted message.
// Example: domain.Errorf(domain.EINVALID, "relay.decode", "unexpected field %q", name)
func Errorf(code, op, format string, args ...interface{}) error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// =============================================================================
// Common errors (convenience)
// =============================================================================

// Invalid creates a client-error for a single issue.
// Example: domain.Invalid("relay.decode", "Email and message are required.")
func Invalid(op, message string) error {
	return &Error{
		Code:    EINVALID,
		Op:      op,
		Message: message,
	}
}

// NotFound creates a not found error for a resource.
func NotFound(op, resource string) error {
	return &Error{
		Code:    ENOTFOUND,
		Op:      op,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// MethodNotAllowed creates an error for a request using the wrong verb.
func MethodNotAllowed(op string) error {
	return &Error{
		Code:    EMETHOD,
		Op:      op,
		Message: "Method not allowed",
	}
}

// Configuration wraps a missing-settings failure. The message is shown to
// users; the wrapped error (which may name settings) is only logged.
func Configuration(err error, op, message string) error {
	return &Error{
		Code:    ECONFIG,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Delivery wraps a transport failure. The transport error is only logged.
func Delivery(err error, op, message string) error {
	return &Error{
		Code:    EDELIVERY,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Internal creates an internal error (wraps underlying error).
// The message shown to users will be generic; the underlying error is for logging.
func Internal(err error, op, message string) error {
	return &Error{
		Code:    EINTERNAL,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
