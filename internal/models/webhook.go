package models

import (
	"encoding/json"
	"log/slog"
)

// EventAll subscribes to every event type.
const EventAll = "All"

// WebhookSettings is the body of the remote webhook configuration endpoint.
type WebhookSettings struct {
	Webhook   string   `json:"webhook"`
	Events    []string `json:"events"`
	Subscribe []string `json:"subscribe"`
	Active    bool     `json:"Active"`
}

// NewWebhookSettings builds the settings body. Subscribe mirrors events, and no events means EventAll.
func NewWebhookSettings(url string, events []string, active bool) WebhookSettings {
	if len(events) == 0 {
		events = []string{EventAll}
	}
	return WebhookSettings{
		Webhook:   url,
		Events:    events,
		Subscribe: events,
		Active:    active,
	}
}

// LogValue implements slog.LogValuer.
func (w WebhookSettings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("webhook", w.Webhook),
		slog.Any("events", w.Events),
		slog.Bool("active", w.Active),
	)
}

// Callback is the envelope POSTed by the remote API to the registered webhook.
type Callback struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event,omitempty"`
}
