// ABOUTME: Process-wide zap logger. Commands init it once from config;
// ABOUTME: everything else receives it or falls back to the no-op Log.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Log is the shared logger. It is a no-op until InitLogger runs, so
// packages can log unconditionally.
var Log = zap.NewNop()

// InitLogger builds the global logger. Level is a zap level name
// ("debug", "info", "warn", "error"); format is "console" or "json".
// Output goes to stderr so command output on stdout stays clean.
func InitLogger(level, format string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	Log = log
	return nil
}

// Sync flushes buffered log entries. Call it on the way out.
func Sync() {
	_ = Log.Sync()
}
