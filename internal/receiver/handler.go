// Package receiver processes the callbacks the remote API delivers to the registered webhook.
package receiver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/isometry/hookctl/internal/helpers"
	"github.com/isometry/hookctl/internal/metrics"
	"github.com/isometry/hookctl/internal/models"
	"github.com/isometry/hookctl/internal/validation"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// Archiver stores raw callbacks.
type Archiver interface {
	PutS3Object(id string, bucket string, body []byte) (string, error)
}

// Option configures a Handler.
type Option func(*Handler)

// Handler validates, filters and archives callbacks.
type Handler struct {
	logger          *slog.Logger
	webhookSecret   *validation.WebhookSecret
	signatureHeader string
	events          []string
	archiver        Archiver
	bucket          string
	metrics         *metrics.Metrics
	unsubscribed    *rate.Sometimes
}

// NewHandler creates a new callback Handler.
func NewHandler(opts ...Option) *Handler {
	_inst := &Handler{}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.signatureHeader == "" {
		_inst.signatureHeader = validation.DefaultSignatureHeader
	}
	if len(_inst.events) == 0 {
		_inst.events = []string{models.EventAll}
	}
	if _inst.metrics == nil {
		_inst.metrics = metrics.New(prometheus.NewRegistry())
	}
	_inst.unsubscribed = helpers.Throttle(time.Minute)
	return _inst
}

// Subscribed reports whether callbacks of eventType are accepted.
func (h *Handler) Subscribed(eventType string) bool {
	_, ok := h.subscription(eventType)
	return ok
}

// subscription returns the configured entry matching eventType.
func (h *Handler) subscription(eventType string) (string, bool) {
	for _, e := range h.events {
		switch {
		case strings.EqualFold(e, models.EventAll):
			return models.EventAll, true
		case strings.EqualFold(e, eventType):
			return e, true
		}
	}
	return "", false
}

// Process handles one callback. Headers are expected with lower-case keys.
func (h *Handler) Process(body []byte, headers map[string]string) (models.Response, error) {
	logger := h.logger
	h.metrics.Received.Inc()

	if h.webhookSecret != nil {
		if err := h.webhookSecret.ValidateSignature(body, headers, h.signatureHeader); err != nil {
			logger.Warn("validating signature", slog.Any("error", err))
			h.metrics.Rejected.WithLabelValues("signature").Inc()
			return models.Response{Body: err.Error(), StatusCode: http.StatusForbidden}, err
		}
		logger.Debug("signature is valid")
	}

	var callback models.Callback
	if err := json.Unmarshal(body, &callback); err != nil {
		logger.Warn("parsing callback payload", slog.Any("error", err))
		h.metrics.Rejected.WithLabelValues("payload").Inc()
		return models.Response{Body: "invalid payload", StatusCode: http.StatusUnprocessableEntity}, errors.Wrap(err, "invalid payload")
	}
	if callback.Type == "" {
		logger.Warn("missing event type")
		h.metrics.Rejected.WithLabelValues("type").Inc()
		return models.Response{Body: "missing event type", StatusCode: http.StatusUnprocessableEntity}, errors.New("missing event type")
	}
	logger = logger.With(slog.String("event", callback.Type))

	subscription, ok := h.subscription(callback.Type)
	if !ok {
		h.unsubscribed.Do(func() {
			logger.Warn("received callbacks for unsubscribed event types", slog.Any("subscribed", h.events))
		})
		h.metrics.Skipped.Inc()
		return models.Response{Body: fmt.Sprintf("event type %s not subscribed", callback.Type), StatusCode: http.StatusAccepted}, nil
	}

	if h.archiver != nil && h.bucket != "" {
		key, err := h.archiver.PutS3Object(callback.Type, h.bucket, body)
		if err != nil {
			logger.Error("archiving callback", slog.Any("error", err))
			h.metrics.Rejected.WithLabelValues("archive").Inc()
			return models.Response{Body: "failed to archive callback", StatusCode: http.StatusInternalServerError}, err
		}
		h.metrics.Archived.Inc()
		logger = logger.With(slog.String("key", key))
	}

	logger.Info("callback accepted", slog.Int("size", len(body)), slog.String("payload", helpers.Truncate(string(callback.Event), 256)))
	h.metrics.Accepted.WithLabelValues(subscription).Inc()
	return models.Response{Body: "accepted", StatusCode: http.StatusOK}, nil
}

// Handle processes a transport-agnostic request.
func (h *Handler) Handle(req models.Request) (models.Response, error) {
	headers := make(map[string]string, len(req.Headers))
	for k, v := range req.Headers {
		headers[strings.ToLower(k)] = v
	}
	return h.Process([]byte(req.Body), headers)
}
