// Package observability owns the process-wide CLI logger.
package observability

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fulmenhq/gofulmen/logging"
)

var (
	// CLILogger is the logger used by commands. It writes to stderr so that
	// stdout stays reserved for command results.
	CLILogger *logging.Logger

	loggerMu sync.Mutex
)

// InitCLILogger replaces CLILogger with a console logger named after the
// binary. verbose enables debug level.
func InitCLILogger(serviceName string, verbose bool) error {
	level := logging.INFO
	if verbose {
		level = logging.DEBUG
	}
	return initCLI(serviceName, level)
}

// InitCLILoggerWithLevel is InitCLILogger with a level name such as "warn".
// Unknown names fall back to info.
func InitCLILoggerWithLevel(serviceName, level string) error {
	return initCLI(serviceName, ParseLevel(level))
}

func initCLI(serviceName string, level logging.Severity) error {
	logger, err := logging.NewCLI(serviceName)
	if err != nil {
		return fmt.Errorf("init CLI logger: %w", err)
	}
	logger.SetLevel(level)

	loggerMu.Lock()
	defer loggerMu.Unlock()
	CLILogger = logger
	return nil
}

// ParseLevel maps a level name to a logging severity, defaulting to info.
func ParseLevel(name string) logging.Severity {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "trace":
		return logging.DEBUG
	case "warn", "warning":
		return logging.WARN
	case "error":
		return logging.ERROR
	default:
		return logging.INFO
	}
}
