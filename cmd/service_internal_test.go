package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/isometry/hookctl/internal/config"
	"github.com/isometry/hookctl/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceHandler(t *testing.T) {
	require.NoError(t, config.Reset())
	config.Service.Path = "/callbacks"

	reg := prometheus.NewRegistry()
	rtm, err := newRuntime(context.Background(), metrics.New(reg))
	require.NoError(t, err)
	h := newServiceHandler(reg, rtm)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/callbacks", strings.NewReader(`{"type":"Message","event":{}}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "hookctl_callbacks_received_total 1")
	assert.Contains(t, rr.Body.String(), `hookctl_callbacks_accepted_total{subscription="All"} 1`)
}

func TestNewRuntime_S3UploadWithoutBucket(t *testing.T) {
	require.NoError(t, config.Reset())
	config.Receiver.S3.Upload.Enabled = true

	_, err := newRuntime(context.Background(), metrics.New(prometheus.NewRegistry()))
	assert.ErrorContains(t, err, "without a bucket name")
}
