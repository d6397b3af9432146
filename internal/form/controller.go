package form

import (
	"context"
	"log/slog"
	"sync"
)

// State is the controller's position in the submission flow.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSending
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSending:
		return "sending"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// TransitionFunc observes state changes. It runs with the controller locked
// and must not call back into the Controller.
type TransitionFunc func(from, to State)

// Controller drives one contact form: draft edits, validation, a single
// in-flight submission and the resulting notification.
//
// idle -> validating -> sending -> (success | error) -> idle
//
// Validation failures return straight to idle. Leaving success or error
// requires Dismiss.
type Controller struct {
	mu sync.Mutex

	submitter    Submitter
	logger       *slog.Logger
	onTransition TransitionFunc

	state        State
	draft        Draft
	errors       Errors
	focus        Field
	notification *Notification
	unmounted    bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithTransitionFunc registers an observer for state changes.
func WithTransitionFunc(fn TransitionFunc) Option {
	return func(c *Controller) { c.onTransition = fn }
}

// NewController creates a controller with an empty draft.
func NewController(submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		submitter: submitter,
		logger:    slog.Default(),
		errors:    Errors{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetName updates the optional name.
func (c *Controller) SetName(v string) { c.set(FieldName, v) }

// SetEmail updates the email and clears its validation error.
func (c *Controller) SetEmail(v string) { c.set(FieldEmail, v) }

// SetMessage updates the message and clears its validation error.
func (c *Controller) SetMessage(v string) { c.set(FieldMessage, v) }

func (c *Controller) set(f Field, v string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unmounted {
		return
	}

	switch f {
	case FieldName:
		c.draft.Name = v
	case FieldEmail:
		c.draft.Email = v
	case FieldMessage:
		c.draft.Message = v
	}
	delete(c.errors, f)
}

// Submit validates the draft and, when it is clean, sends it. It blocks for
// the duration of the relay call.
//
// Returns nil on success, Errors when validation fails, *SendError when the
// relay call fails, and ErrSubmitInFlight, ErrNotificationOpen or
// ErrUnmounted when the call does nothing.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()

	if err := c.checkSubmittable(); err != nil {
		c.mu.Unlock()
		return err
	}

	c.transition(StateValidating)
	errs := Validate(c.draft)
	c.errors = errs
	if len(errs) > 0 {
		c.focus = errs.First()
		c.transition(StateIdle)
		c.mu.Unlock()
		return errs.clone()
	}

	c.focus = FieldNone
	draft := c.draft
	c.transition(StateSending)
	c.mu.Unlock()

	res := c.submitter.Submit(ctx, draft)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unmounted {
		c.logger.Debug("contact: result after unmount dropped", "kind", res.Kind)
		return ErrUnmounted
	}

	n := notificationFor(res)
	c.notification = &n

	if res.Kind == KindSuccess {
		c.draft = Draft{}
		c.errors = Errors{}
		c.transition(StateSuccess)
		return nil
	}

	c.logger.Info("contact: submission failed", "transport", res.Transport, "message", n.Body, "error", res.Err)
	c.transition(StateError)
	return &SendError{Result: res}
}

func (c *Controller) checkSubmittable() error {
	if c.unmounted {
		return ErrUnmounted
	}
	switch c.state {
	case StateSending, StateValidating:
		return ErrSubmitInFlight
	case StateSuccess, StateError:
		return ErrNotificationOpen
	}
	return nil
}

// Dismiss closes the notification and returns to idle. It reports whether a
// notification was open.
func (c *Controller) Dismiss() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unmounted || (c.state != StateSuccess && c.state != StateError) {
		return false
	}

	c.notification = nil
	c.transition(StateIdle)
	return true
}

// Unmount detaches the controller. A submission that completes afterwards
// changes nothing, and every later call is a no-op.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unmounted = true
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns a copy of the current input.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Errors returns a copy of the current validation errors.
func (c *Controller) Errors() Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors.clone()
}

// Focus returns the field that should hold input focus, or FieldNone.
func (c *Controller) Focus() Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focus
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateSending
}

// Notification returns the open notification, if any.
func (c *Controller) Notification() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.notification == nil {
		return Notification{}, false
	}
	return *c.notification, true
}

func (c *Controller) transition(to State) {
	from := c.state
	c.state = to
	if c.onTransition != nil && from != to {
		c.onTransition(from, to)
	}
}
