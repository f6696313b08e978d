package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Notifier is the collaborator that fans an approved event out to city
// subscribers. Dispatch is fire-and-forget: callers log failures and
// never block or roll back the approval on them.
type Notifier interface {
	NotifyEventApproved(ctx context.Context, alert EventAlert) error
}

// EventAlert is the payload posted to the alert endpoint.
type EventAlert struct {
	EventID   uuid.UUID `json:"event_id"`
	EventName string    `json:"event_name"`
	CityID    uuid.UUID `json:"city_id"`
	CityName  string    `json:"city_name"`
	EventURL  string    `json:"event_url"`
}

// Config holds configuration for the HTTP notifier.
type Config struct {
	WebhookURL string
	APIKey     string
	Timeout    time.Duration
}

// HTTPNotifier posts event alerts to an external HTTP endpoint.
type HTTPNotifier struct {
	config Config
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPNotifier creates a new HTTPNotifier.
func NewHTTPNotifier(config Config, logger zerolog.Logger) *HTTPNotifier {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	return &HTTPNotifier{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

// NotifyEventApproved posts the alert payload to the configured endpoint.
// When no endpoint is configured the alert is logged instead, which keeps
// local development working without an alert service.
func (n *HTTPNotifier) NotifyEventApproved(ctx context.Context, alert EventAlert) error {
	if n.config.WebhookURL == "" {
		n.logger.Warn().
			Str("eventId", alert.EventID.String()).
			Str("eventName", alert.EventName).
			Str("cityName", alert.CityName).
			Msg("Alert webhook not configured - event alert not sent")
		return nil
	}

	body, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.config.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.config.APIKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send alert request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("alert endpoint returned %d: %s", resp.StatusCode, string(msg))
	}

	n.logger.Info().
		Str("eventId", alert.EventID.String()).
		Str("cityId", alert.CityID.String()).
		Msg("Event alert dispatched")
	return nil
}
