// Package webhook provides a client for the webhook configuration endpoint of the remote messaging API.
package webhook

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

	"github.com/isometry/hookctl/internal/helpers"
	"github.com/isometry/hookctl/internal/models"
	"github.com/pkg/errors"
)

const (
	// Path is the endpoint configuring the instance webhook, relative to the base URL.
	Path = "/webhook"
	// TokenHeader carries the instance identifier.
	TokenHeader = "token"
)

// Client talks to the webhook endpoint of a single remote instance.
type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// Response is the raw answer of the remote API.
type Response struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrap(err, "failed to decode response body")
	}
	return nil
}

// NewClient creates a new Client. A base URL and a token are required.
func NewClient(opts ...Option) (*Client, error) {
	_inst := &Client{}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.httpClient == nil {
		_inst.httpClient = &http.Client{Timeout: _inst.timeout}
	}
	_inst.baseURL = strings.TrimRight(strings.TrimSpace(_inst.baseURL), "/")
	if _inst.baseURL == "" {
		return nil, errors.New("missing base URL")
	}
	if _inst.token == "" {
		return nil, &NoTokenError{}
	}
	return _inst, nil
}

// SetWebhook replaces the instance webhook configuration with settings.
func (c *Client) SetWebhook(ctx context.Context, settings models.WebhookSettings) (*Response, error) {
	body, err := json.Marshal(settings)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal webhook settings")
	}
	c.logger.Debug("updating webhook...", slog.Any("settings", settings))
	return c.do(ctx, http.MethodPut, body)
}

// GetWebhook returns the current instance webhook configuration.
func (c *Client) GetWebhook(ctx context.Context) (*Response, error) {
	c.logger.Debug("fetching webhook...")
	return c.do(ctx, http.MethodGet, nil)
}

func (c *Client) do(ctx context.Context, method string, body []byte) (*Response, error) {
	endpoint := c.baseURL + Path
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s %s request", method, endpoint)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(TokenHeader, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, endpoint)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	c.logger.Debug("received response", slog.Int("status", resp.StatusCode), slog.String("body", helpers.Truncate(string(respBody), 512)))

	response := &Response{StatusCode: resp.StatusCode, Body: respBody}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return response, &StatusError{Method: method, URL: endpoint, StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return response, nil
}

// StatusError is returned when the remote API answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, helpers.Truncate(e.Body, 256))
}

// NoTokenError is returned when no instance token is configured.
type NoTokenError struct{}

func (m *NoTokenError) Error() string {
	return "no instance token found"
}
