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

func TestConfig_SetDefaults(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()

	assert.Equal(t, DefaultLevel, cfg.Level)
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNew_BuildsLogger(t *testing.T) {
	log, err := New(Config{Level: "debug"})
	require.NoError(t, err)
	require.NotNil(t, log)
	log.Debug("hello", String("k", "v"))
}

func TestWith_AttachesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).With(String("session", "abc"))

	log.Warn("course failed", Err(errors.New("boom")), Int("status", 500))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "course failed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "abc", fields["session"])
	assert.Equal(t, "boom", fields["error"])
	assert.EqualValues(t, 500, fields["status"])
}
