package security

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*SecurityLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewSecurityLogger(zap.New(core), "site", "test"), logs
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ana@example.com", "a***@example.com"},
		{"a@example.com", "***@example.com"},
		{"no-at-sign", "***"},
		{"x", "***"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskEmail(tt.in), tt.in)
	}
}

func TestLogContactHandoff(t *testing.T) {
	sl, logs := observed()
	ctx := context.Background()

	sl.LogContactHandoff(ctx, "ana@example.com", "10.0.0.1", "req-1", nil)
	sl.LogContactHandoff(ctx, "ana@example.com", "10.0.0.1", "req-2", errors.New("link too long"))

	entries := logs.All()
	require.Len(t, entries, 2)

	ok := entries[0]
	assert.Equal(t, zapcore.InfoLevel, ok.Level)
	assert.Equal(t, string(EventContactHandoff), ok.Message)
	assert.Equal(t, "a***@example.com", ok.ContextMap()["subject_value"])
	assert.NotContains(t, ok.ContextMap(), "details")

	failed := entries[1]
	assert.Equal(t, zapcore.WarnLevel, failed.Level)
	assert.Equal(t, string(EventHandoffFailed), failed.Message)
	assert.Equal(t, "req-2", failed.ContextMap()["request_id"])
}

func TestLogCSRFViolationIsHigh(t *testing.T) {
	sl, logs := observed()
	sl.LogCSRFViolation(context.Background(), "10.0.0.1", "curl", "req", "/contact", "missing")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "HIGH", entry.ContextMap()["severity"])
}

func TestSessionIDIsHashed(t *testing.T) {
	sl, logs := observed()
	sl.LogSessionClosed(context.Background(), "3f1c8a52-6b1e-4d0f-9a77-0c6a7c1e2b44", "")

	value := logs.All()[0].ContextMap()["subject_value"]
	assert.Equal(t, HashValue("3f1c8a52-6b1e-4d0f-9a77-0c6a7c1e2b44"), value)
	assert.Len(t, value, 16)
}

func TestDefaultLogger(t *testing.T) {
	previous := DefaultLogger()
	t.Cleanup(func() { SetDefault(previous) })

	sl, logs := observed()
	SetDefault(sl)
	DefaultLogger().LogRateLimitTriggered(context.Background(), "10.0.0.1", "", "", "/v1/contact")

	assert.Equal(t, 1, logs.FilterMessage(string(EventRateLimitTriggered)).Len())
	assert.Equal(t, "WARN", string(GetSeverity("unknown")))
}
