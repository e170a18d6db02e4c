package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MailerConfig configures the HTTP mail gateway client. An empty
// BaseURL disables outbound mail; consumers log and skip instead.
type MailerConfig struct {
	BaseURL string
	APIKey  string
	Sender  string
	Timeout time.Duration
}

// Mailer delivers transactional emails through the campus mail gateway
type Mailer struct {
	config     MailerConfig
	httpClient *http.Client
}

type sendMailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewMailer(cfg MailerConfig) *Mailer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Mailer{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Enabled reports whether a gateway is configured
func (m *Mailer) Enabled() bool {
	return m.config.BaseURL != ""
}

// Send posts one message to the gateway and fails on any non-2xx response
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if !m.Enabled() {
		return fmt.Errorf("mail gateway is not configured")
	}

	payload := sendMailRequest{
		From:    m.config.Sender,
		To:      to,
		Subject: subject,
		Body:    body,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	url := m.config.BaseURL + "/api/v1/mail/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if m.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.config.APIKey)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call mail gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mail gateway returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
