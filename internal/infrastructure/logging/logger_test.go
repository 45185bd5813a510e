package logging

import (
	"bytes"
	"context"
	"crm-admin/internal/config"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNewHandlerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, config.LoggerConfig{Level: "info", Encoding: "json"}))

	logger.InfoContext(context.Background(), "customer created", slog.Int64("customerID", 7))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "customer created", entry["msg"])
	assert.Equal(t, float64(7), entry["customerID"])
}

func TestNewHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, config.LoggerConfig{Level: "warn"}))

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLoggerSetsDefault(t *testing.T) {
	logger := NewLogger(config.LoggerConfig{Level: "error"})
	assert.NotNil(t, logger)
	assert.Same(t, logger.Handler(), slog.Default().Handler())
}
