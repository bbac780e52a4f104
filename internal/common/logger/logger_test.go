package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNew(t *testing.T) {
	l, err := New(Options{Level: "warn", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	console, err := NewStructured(Options{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, console)
}

func TestZapWrapperFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core))

	log.WithFields(map[string]interface{}{"component": "store"}).
		WithError(errors.New("boom")).
		Info("created", map[string]interface{}{"orgId": 7, "cause": errors.New("inner")})

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "store", ctx["component"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "inner", ctx["cause"])
	assert.EqualValues(t, 7, ctx["orgId"])
}

func TestNoOpAndTestLoggers(t *testing.T) {
	NewNoOpLogger().Error("ignored", nil)
	NewTestLogger(t).Debug("visible in -v", map[string]interface{}{"k": "v"})
}
