// Package logging builds the zap logger used across mtop.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level and destination of the logger.
type Options struct {
	Level string // debug, info, warn, error
	File  string // optional path; empty logs to stderr
	// Quiet discards all output unless File is set. Used while the TUI owns
	// the terminal.
	Quiet bool
}

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zap.InfoLevel, nil
	case "debug":
		return zap.DebugLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	}
	return zap.InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// New sets up a console logger in a human readable format.
func New(opts Options) (*zap.Logger, error) {
	if opts.Quiet && opts.File == "" {
		return zap.NewNop(), nil
	}
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	prodConfig := zap.NewProductionConfig()
	prodConfig.Encoding = "console"
	prodConfig.Level = zap.NewAtomicLevelAt(level)
	prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	prodConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	prodConfig.DisableStacktrace = true
	if opts.File != "" {
		prodConfig.OutputPaths = []string{opts.File}
		prodConfig.ErrorOutputPaths = []string{opts.File}
	}

	logger, err := prodConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
