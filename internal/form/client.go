package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultEndpoint is the relay path on the site origin.
const DefaultEndpoint = "/api/contact"

// maxResponseSize caps how much of a relay response is read.
const maxResponseSize = 64 * 1024

// HTTPSubmitter posts drafts to the relay as JSON.
type HTTPSubmitter struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewHTTPSubmitter creates a submitter for endpoint. A nil client gets a
// default with a 30 second timeout.
func NewHTTPSubmitter(endpoint string, client *http.Client, logger *slog.Logger) *HTTPSubmitter {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPSubmitter{endpoint: endpoint, client: client, logger: logger}
}

type relayResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Submit sends one request. Only a 2xx response whose body is {"ok":true}
// counts as success.
func (s *HTTPSubmitter) Submit(ctx context.Context, d Draft) Result {
	body, err := json.Marshal(d)
	if err != nil {
		return Result{Kind: KindError, Message: MsgRejected, Err: fmt.Errorf("encode draft: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{Kind: KindError, Message: MsgRejected, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("contact: relay unreachable", "endpoint", s.endpoint, "error", err)
		return Result{Kind: KindError, Message: MsgNetwork, Transport: true, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		s.logger.Warn("contact: relay response cut short", "status", resp.StatusCode, "error", err)
		return Result{Kind: KindError, Message: MsgNetwork, Transport: true, Err: err}
	}

	var parsed relayResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := MsgRejected
		if decodeErr == nil && parsed.Error != "" {
			msg = parsed.Error
		}
		s.logger.Info("contact: relay rejected submission", "status", resp.StatusCode, "error", msg)
		return Result{Kind: KindError, Message: msg, Err: fmt.Errorf("relay status %d", resp.StatusCode)}
	}

	if decodeErr != nil {
		return Result{Kind: KindError, Message: MsgRejected, Err: fmt.Errorf("decode relay response: %w", decodeErr)}
	}
	if !parsed.OK {
		msg := MsgRejected
		if parsed.Error != "" {
			msg = parsed.Error
		}
		return Result{Kind: KindError, Message: msg, Err: fmt.Errorf("relay returned ok=false")}
	}

	return Result{Kind: KindSuccess}
}
