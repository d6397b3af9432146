package form

import (
	"context"
	"errors"
)

// Kind is the outcome of a submission.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindSuccess {
		return "success"
	}
	return "error"
}

// Fallback messages shown when the relay gives nothing better.
const (
	MsgRejected = "Failed to send message — please try again later."
	MsgNetwork  = "Network error while sending message. Please check your connection and try again."
)

// Result is the outcome of one relay call.
type Result struct {
	Kind Kind
	// Message is the user-facing error text. Empty on success.
	Message string
	// Transport is set when the request never got an HTTP response.
	Transport bool
	// Err is the underlying cause, for logging only.
	Err error
}

// Submitter delivers a draft to the relay. Implementations make exactly one
// attempt and never return a zero Result for a failed call.
type Submitter interface {
	Submit(ctx context.Context, d Draft) Result
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, d Draft) Result

func (f SubmitterFunc) Submit(ctx context.Context, d Draft) Result { return f(ctx, d) }

// Controller errors for submits that do nothing.
var (
	ErrSubmitInFlight   = errors.New("form: submission already in flight")
	ErrNotificationOpen = errors.New("form: dismiss the notification first")
	ErrUnmounted        = errors.New("form: controller unmounted")
)

// SendError is returned by Controller.Submit when the relay call failed.
type SendError struct {
	Result Result
}

func (e *SendError) Error() string {
	return "form: send failed: " + e.Result.Message
}

func (e *SendError) Unwrap() error {
	return e.Result.Err
}
