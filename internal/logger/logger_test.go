package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}

func TestInitializeWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "feed.log")

	require.NoError(t, Initialize("debug", logFile))
	defer Close()

	assert.True(t, Log.Core().Enabled(zapcore.DebugLevel))
	Log.Info("hello", WithFeedItemID(7), WithKey("cat.png"))
	_ = Log.Sync()
	assert.FileExists(t, logFile)
}
