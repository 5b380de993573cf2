package receiver

import (
	"log/slog"

	"github.com/isometry/hookctl/internal/metrics"
	"github.com/isometry/hookctl/internal/validation"
)

// WithLogger sets the logger instance for the handler.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithWebhookSecret enables signature validation. An empty secret disables it.
func WithWebhookSecret(secret string) Option {
	return func(h *Handler) {
		h.webhookSecret = validation.NewWebhookSecret(secret)
	}
}

// WithSignatureHeader sets the header carrying the callback signature.
func WithSignatureHeader(header string) Option {
	return func(h *Handler) {
		h.signatureHeader = header
	}
}

// WithEvents sets the accepted callback types.
func WithEvents(events []string) Option {
	return func(h *Handler) {
		h.events = events
	}
}

// WithArchiver archives accepted callbacks to bucket.
func WithArchiver(archiver Archiver, bucket string) Option {
	return func(h *Handler) {
		h.archiver = archiver
		h.bucket = bucket
	}
}

// WithMetrics sets the collectors updated by the handler.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}
