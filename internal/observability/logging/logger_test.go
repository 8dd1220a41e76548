package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"testing"

	"catchup-news/internal/observability/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		value    string
		expected slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.value))
		})
	}
}

func TestNewLogger_UsesEnvLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger := NewLogger()
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	t.Setenv("LOG_LEVEL", "error")
	logger = NewTextLogger()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
}

func TestNewJSONLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, slog.LevelInfo)

	logger.Debug("this should not appear")
	logger.Info("news fetched", slog.Int("articles", 2))

	assert.NotContains(t, buf.String(), "this should not appear")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "news fetched", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, float64(2), entry["articles"])
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := NewJSONLogger(&buf, slog.LevelInfo)

	ctx := requestid.WithRequestID(context.Background(), "550e8400-e29b-41d4-a716-446655440000")
	WithRequestID(ctx, baseLogger).Info("test message")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", entry["request_id"])
}

func TestWithRequestID_EmptyRequestID(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := NewJSONLogger(&buf, slog.LevelInfo)

	logger := WithRequestID(context.Background(), baseLogger)
	logger.Info("test message")

	assert.Same(t, baseLogger, logger)
	assert.NotContains(t, buf.String(), "request_id")
}

func TestFromContext(t *testing.T) {
	logger := NewJSONLogger(&bytes.Buffer{}, slog.LevelInfo)

	fallback := NewJSONLogger(&bytes.Buffer{}, slog.LevelDebug)

	assert.Same(t, logger, FromContext(WithLogger(context.Background(), logger), fallback))
	assert.Same(t, fallback, FromContext(context.Background(), fallback))
	assert.Equal(t, slog.Default(), FromContext(context.Background(), nil))
	assert.Equal(t, slog.Default(), FromContext(context.WithValue(context.Background(), loggerContextKey, "not a logger"), nil))
}

func TestRedactURL(t *testing.T) {
	u, err := url.Parse("https://newsapi.org/v2/everything?q=tesla&from=2021-4-2&apiKey=secret123")
	require.NoError(t, err)

	got := RedactURL(u, "apiKey")

	assert.Equal(t, "https://newsapi.org/v2/everything?q=tesla&from=2021-4-2&apiKey=REDACTED", got)
	assert.NotContains(t, got, "secret123")
	assert.Contains(t, u.String(), "secret123", "original URL must be untouched")
}

func TestRedactURL_NoSecrets(t *testing.T) {
	u, err := url.Parse("https://newsapi.org/v2/everything?q=tesla")
	require.NoError(t, err)

	assert.Equal(t, u.String(), RedactURL(u, "apiKey"))
	assert.Equal(t, u.String(), RedactURL(u))
	assert.Equal(t, "", RedactURL(nil, "apiKey"))
}
