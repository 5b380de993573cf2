package helpers_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/isometry/hookctl/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		Name      string
		Verbosity int
		Enabled   slog.Level
		Disabled  slog.Level
	}{
		{
			Name:      "default_warn",
			Verbosity: 0,
			Enabled:   slog.LevelWarn,
			Disabled:  slog.LevelInfo,
		},
		{
			Name:      "info",
			Verbosity: 1,
			Enabled:   slog.LevelInfo,
			Disabled:  slog.LevelDebug,
		},
		{
			Name:      "debug",
			Verbosity: 2,
			Enabled:   slog.LevelDebug,
			Disabled:  slog.LevelDebug - 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			logger := helpers.NewLogger(&bytes.Buffer{}, tc.Verbosity, false)
			assert.True(t, logger.Enabled(context.Background(), tc.Enabled))
			assert.False(t, logger.Enabled(context.Background(), tc.Disabled))
		})
	}
}

func TestThrottle(t *testing.T) {
	throttle := helpers.Throttle(time.Hour)
	calls := 0
	for range 3 {
		throttle.Do(func() { calls++ })
	}
	assert.Equal(t, 1, calls)
}
