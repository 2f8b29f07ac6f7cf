package observability

import (
	"testing"

	"github.com/fulmenhq/gofulmen/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logging.Severity
	}{
		{"debug", logging.DEBUG},
		{"TRACE", logging.DEBUG},
		{" warn ", logging.WARN},
		{"warning", logging.WARN},
		{"error", logging.ERROR},
		{"info", logging.INFO},
		{"", logging.INFO},
		{"loud", logging.INFO},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestInitCLILogger(t *testing.T) {
	orig := CLILogger
	defer func() { CLILogger = orig }()

	require.NoError(t, InitCLILogger("test", true))
	require.NotNil(t, CLILogger)
	first := CLILogger

	require.NoError(t, InitCLILoggerWithLevel("test", "warn"))
	assert.NotSame(t, first, CLILogger, "each init installs a fresh logger")

	assert.NotPanics(t, func() {
		CLILogger.Debug("hidden at warn")
		CLILogger.Warn("listing failed", zap.String("bucket", "logs"))
	})
}

func TestCLILoggerWithFields(t *testing.T) {
	orig := CLILogger
	defer func() { CLILogger = orig }()

	require.NoError(t, InitCLILogger("test", false))
	child := CLILogger.WithFields(map[string]any{"session_id": "abc"})
	require.NotNil(t, child)

	assert.NotPanics(t, func() {
		child.Info("tagged", zap.String("prefix", "2024/"))
	})
}
