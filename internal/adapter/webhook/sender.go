// Package webhook sends reminder notifications to external delivery
// services. Delivery itself (SMTP, push gateways) lives behind those
// services; this adapter just POSTs the notification payload.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Notification is the payload POSTed to a delivery service.
type Notification struct {
	Channel   string     `json:"channel"`
	UserID    uuid.UUID  `json:"user_id"`
	Recipient string     `json:"recipient,omitempty"`
	Message   string     `json:"message"`
	RemindAt  *time.Time `json:"remind_at,omitempty"`
}

// Sender POSTs notifications to one delivery-service URL.
type Sender struct {
	channel    string
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

// NewSender creates a Sender for one delivery channel ("email" or "push").
// An empty url leaves the sender unconfigured; Send then fails with a
// descriptive error that the dispatcher logs.
func NewSender(channel, url string, timeout time.Duration, logger *slog.Logger) *Sender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Sender{
		channel:    channel,
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "webhook", "channel", channel),
	}
}

// Send delivers one notification. The channel field is stamped from the
// sender so callers cannot mismatch payload and endpoint.
func (s *Sender) Send(ctx context.Context, n Notification) error {
	if s.url == "" {
		return fmt.Errorf("webhook: %s delivery url not configured", s.channel)
	}

	n.Channel = s.channel

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("webhook: marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.doWithRetry(ctx, req, body)
	if err != nil {
		return fmt.Errorf("webhook: request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode)
	}

	s.log.DebugContext(ctx, "notification delivered", slog.String("user_id", n.UserID.String()))
	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (s *Sender) doWithRetry(ctx context.Context, req *http.Request, body []byte) (*http.Response, error) {
	resp, err := s.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	s.log.WarnContext(ctx, "webhook retry", slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	// The original request body was consumed by the first attempt.
	retry, rerr := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if rerr != nil {
		return nil, rerr
	}
	retry.Header.Set("Content-Type", "application/json")

	return s.httpClient.Do(retry)
}
