package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to the external WhatsApp gateway. Deliveries are fired
// once, without retries; callers decide whether a failure matters.
type Client struct {
	gatewayURL string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

type sendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// NewClient creates a gateway client. An empty gatewayURL disables
// sending, which is the expected state in development.
func NewClient(gatewayURL, apiKey string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Enabled reports whether a gateway is configured
func (c *Client) Enabled() bool {
	return c.gatewayURL != ""
}

// SendMessage posts a text message to the gateway
func (c *Client) SendMessage(ctx context.Context, phone, message string) error {
	if !c.Enabled() {
		c.logger.Warn().
			Str("phone", phone).
			Msg("WhatsApp gateway not configured - message not sent")
		return nil
	}

	payload, err := json.Marshal(sendMessageRequest{Phone: phone, Message: message})
	if err != nil {
		return fmt.Errorf("failed to encode whatsapp payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL+"/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("phone", phone).Msg("WhatsApp gateway request failed")
		return fmt.Errorf("whatsapp gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("phone", phone).
			Str("body", string(body)).
			Msg("WhatsApp gateway rejected message")
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}

	return nil
}
