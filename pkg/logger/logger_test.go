package logger_test

import (
	"log/slog"
	"testing"

	"github.com/edmetrics/trendshift/pkg/config"
	"github.com/edmetrics/trendshift/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	cfg := &config.LogConfig{Level: "debug", Format: "json", Destination: "stdout"}
	l := logger.New(cfg)
	require.NotNil(t, l)
	assert.True(t, l.Enabled(t.Context(), slog.LevelDebug))

	cfg = &config.LogConfig{Level: "warn", Format: "text", Destination: "stderr"}
	l = logger.New(cfg)
	require.NotNil(t, l)
	assert.False(t, l.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, l.Enabled(t.Context(), slog.LevelWarn))
}
