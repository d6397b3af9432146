package email

import (
	"context"
	"fmt"
	"sync"
)

// MockSender is a test implementation of Sender that records every message.
type MockSender struct {
	SendFunc func(ctx context.Context, email *Email) (string, error)

	mu   sync.Mutex
	sent []*Email
}

// NewMockSender creates a mock sender that accepts everything.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send records the message, then delegates to SendFunc if set.
func (m *MockSender) Send(ctx context.Context, email *Email) (string, error) {
	m.mu.Lock()
	m.sent = append(m.sent, email)
	n := len(m.sent)
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(ctx, email)
	}
	return fmt.Sprintf("mock-%d", n), nil
}

// Sent returns the messages passed to Send so far.
func (m *MockSender) Sent() []*Email {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Email, len(m.sent))
	copy(out, m.sent)
	return out
}
