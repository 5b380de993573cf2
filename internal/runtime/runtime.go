// Package runtime exposes the callback receiver over HTTP and AWS Lambda.
package runtime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/isometry/hookctl/internal/helpers"
	"github.com/isometry/hookctl/internal/models"
	"github.com/isometry/hookctl/internal/receiver"
	"github.com/pkg/errors"
)

// Supported Lambda payload types.
const (
	PayloadAPIGatewayV1 = "api-gateway-v1"
	PayloadAPIGatewayV2 = "api-gateway-v2"
	PayloadLambdaURL    = "lambda-url"
)

// DefaultMaxBodySize bounds callback bodies read by ServeHTTP.
const DefaultMaxBodySize int64 = 1 << 20

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger instance for the runtime.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithLambdaPayloadType sets the payload type expected in Lambda mode.
func WithLambdaPayloadType(payloadType string) Option {
	return func(r *Runtime) {
		r.payloadType = payloadType
	}
}

// WithMaxBodySize sets the largest callback body ServeHTTP accepts.
func WithMaxBodySize(size int64) Option {
	return func(r *Runtime) {
		r.maxBodySize = size
	}
}

// Runtime adapts transports to the receiver Handler.
type Runtime struct {
	*receiver.Handler
	logger      *slog.Logger
	payloadType string
	maxBodySize int64
}

// NewRuntime creates a new runtime instance
func NewRuntime(handler *receiver.Handler, opts ...Option) *Runtime {
	_inst := &Runtime{Handler: handler}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.payloadType == "" {
		_inst.payloadType = PayloadAPIGatewayV2
	}
	if _inst.maxBodySize <= 0 {
		_inst.maxBodySize = DefaultMaxBodySize
	}
	return _inst
}

type lambdaRequest struct {
	Body            string            `json:"body"`
	Headers         map[string]string `json:"headers"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}

// Lambda is the Lambda handler for the runtime. The response shape follows the configured payload type.
func (r *Runtime) Lambda(_ context.Context, payload json.RawMessage) (any, error) {
	r.logger.Info("received Lambda request", slog.String("payloadType", r.payloadType))

	var req lambdaRequest
	switch r.payloadType {
	case PayloadAPIGatewayV1:
		var in events.APIGatewayProxyRequest
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, errors.Wrap(err, "failed to decode API Gateway v1 request")
		}
		req = lambdaRequest{Body: in.Body, Headers: in.Headers, IsBase64Encoded: in.IsBase64Encoded}
	case PayloadAPIGatewayV2:
		var in events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, errors.Wrap(err, "failed to decode API Gateway v2 request")
		}
		req = lambdaRequest{Body: in.Body, Headers: in.Headers, IsBase64Encoded: in.IsBase64Encoded}
	case PayloadLambdaURL:
		var in events.LambdaFunctionURLRequest
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, errors.Wrap(err, "failed to decode Lambda function URL request")
		}
		req = lambdaRequest{Body: in.Body, Headers: in.Headers, IsBase64Encoded: in.IsBase64Encoded}
	default:
		return nil, fmt.Errorf("unsupported lambda payload type: %s", r.payloadType)
	}

	body := req.Body
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode base64 body")
		}
		body = string(decoded)
	}

	result, err := r.Handler.Handle(models.Request{Body: body, Headers: req.Headers})
	if err != nil {
		r.logger.Warn("callback rejected", slog.Int("status", result.StatusCode), slog.Any("error", err))
		result.Body = err.Error()
	}

	headers := map[string]string{"Content-Type": "text/plain; charset=utf-8"}
	switch r.payloadType {
	case PayloadAPIGatewayV1:
		return events.APIGatewayProxyResponse{Body: result.Body, StatusCode: result.StatusCode, Headers: headers}, nil
	case PayloadAPIGatewayV2:
		return events.APIGatewayV2HTTPResponse{Body: result.Body, StatusCode: result.StatusCode, Headers: headers}, nil
	default:
		return events.LambdaFunctionURLResponse{Body: result.Body, StatusCode: result.StatusCode, Headers: headers}, nil
	}
}

// ServeHTTP is the HTTP handler for the runtime
func (r *Runtime) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodPost:
		break
	default:
		r.logger.Debug("rejecting HTTP request...", slog.Any("requestor", req.RemoteAddr), "reason", "method not allowed", slog.Any("method", req.Method))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusMethodNotAllowed}, nil, resp)
		return
	}

	r.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("path", req.URL.Path))
	headers := make(map[string]string)
	for k, v := range req.Header {
		headers[strings.ToLower(k)] = v[0]
	}

	body, err := io.ReadAll(http.MaxBytesReader(resp, req.Body, r.maxBodySize))
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		r.logger.Warn("rejecting oversized request body", slog.Any("requestor", req.RemoteAddr), slog.Int64("limit", maxErr.Limit))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusRequestEntityTooLarge}, err, resp)
		return
	}
	if err != nil {
		r.logger.Error("failed to read request body", slog.Any("error", err))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusInternalServerError}, err, resp)
		return
	}
	result, err := r.Handler.Process(body, headers)
	helpers.RespondHTTP(result, err, resp)
}
