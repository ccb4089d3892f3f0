// Package logging provides the debug logging singleton used by the registry
// and the sync engine. User-facing reporting stays on the cmd-layer print
// helpers; this logger carries structured diagnostics only, and is silent
// unless QUILL_DEBUG is set.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Initialize installs the global logger. Debug output goes to stderr so it
// never interleaves with command output on stdout.
func Initialize() {
	if os.Getenv("QUILL_DEBUG") == "" {
		zap.ReplaceGlobals(zap.NewNop())
		return
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		zap.ReplaceGlobals(zap.NewNop())
		return
	}
	zap.ReplaceGlobals(logger)
}

// Debugw logs a debug message with additional key-value pairs.
func Debugw(msg string, keysAndValues ...any) {
	zap.S().Debugw(msg, keysAndValues...)
}

// Infow logs an info message with additional key-value pairs.
func Infow(msg string, keysAndValues ...any) {
	zap.S().Infow(msg, keysAndValues...)
}

// Warnw logs a warning with additional key-value pairs.
func Warnw(msg string, keysAndValues ...any) {
	zap.S().Warnw(msg, keysAndValues...)
}

// Errorw logs an error with additional key-value pairs.
func Errorw(msg string, keysAndValues ...any) {
	zap.S().Errorw(msg, keysAndValues...)
}
