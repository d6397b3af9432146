package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultPostmarkURL is the Postmark single-message endpoint.
const DefaultPostmarkURL = "https://api.postmarkapp.com/email"

// PostmarkSender implements the Sender interface using the Postmark API
type PostmarkSender struct {
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

type postmarkEmail struct {
	From     string           `json:"From"`
	To       string           `json:"To"`
	ReplyTo  string           `json:"ReplyTo,omitempty"`
	Subject  string           `json:"Subject"`
	HtmlBody string           `json:"HtmlBody,omitempty"`
	TextBody string           `json:"TextBody,omitempty"`
	Headers  []postmarkHeader `json:"Headers,omitempty"`
}

type postmarkHeader struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

type postmarkResponse struct {
	To        string `json:"To"`
	MessageID string `json:"MessageID"`
	ErrorCode int    `json:"ErrorCode"`
	Message   string `json:"Message"`
}

// NewPostmarkSender creates a new Postmark email sender
func NewPostmarkSender(apiKey string, logger *slog.Logger) *PostmarkSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostmarkSender{
		apiKey:   apiKey,
		endpoint: DefaultPostmarkURL,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}
}

// WithEndpoint points the sender at a different API URL.
func (p *PostmarkSender) WithEndpoint(endpoint string) *PostmarkSender {
	p.endpoint = endpoint
	return p
}

// WithHTTPClient replaces the HTTP client used for API calls.
func (p *PostmarkSender) WithHTTPClient(client *http.Client) *PostmarkSender {
	if client != nil {
		p.client = client
	}
	return p
}

// Send sends an email via Postmark
func (p *PostmarkSender) Send(ctx context.Context, email *Email) (string, error) {
	if err := email.validate(); err != nil {
		return "", err
	}

	payload := postmarkEmail{
		From:     email.From,
		To:       strings.Join(email.To, ","),
		ReplyTo:  email.ReplyTo,
		Subject:  email.Subject,
		HtmlBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	if len(email.Headers) > 0 {
		headers := make([]postmarkHeader, 0, len(email.Headers))
		for name, value := range email.Headers {
			headers = append(headers, postmarkHeader{Name: name, Value: value})
		}
		payload.Headers = headers
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		p.logger.Error("postmark: api error", "status", resp.StatusCode)
		return "", ErrProviderRejected("postmark", resp.StatusCode, string(body))
	}

	var result postmarkResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if result.ErrorCode != 0 {
		return "", fmt.Errorf("postmark error %d: %s", result.ErrorCode, result.Message)
	}

	p.logger.Info("postmark: email sent", "to", email.To, "message_id", result.MessageID)
	return result.MessageID, nil
}
