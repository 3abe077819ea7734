// Package logging builds the zap loggers used by planweaver.
// Each subsystem logs through a named child logger for its Category; categories can be
// switched off individually in the logging section of the config file.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"planweaver/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Config loading, presets, logger setup
	CategoryConfig  Category = "config"  // Config file and environment resolution
	CategoryParams  Category = "params"  // Extraction, validation, operation resolution
	CategoryHandoff Category = "handoff" // Rendering of the resolved invocation
)

// Categories lists every known category.
var Categories = []Category{CategoryBoot, CategoryConfig, CategoryParams, CategoryHandoff}

// New builds the root logger from config. verbose forces debug level. Logs always go to
// stderr, plus cfg.File when set.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Format {
	case "", "console":
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	case "json":
		zc.Encoding = "json"
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	zc.OutputPaths = []string{"stderr"}
	if cfg.File != "" {
		zc.OutputPaths = append(zc.OutputPaths, cfg.File)
	}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// For returns the named logger for a category, or a no-op logger when the category is
// disabled in cfg.
func For(l *zap.Logger, cfg config.LoggingConfig, category Category) *zap.Logger {
	if l == nil || !cfg.IsCategoryEnabled(string(category)) {
		return zap.NewNop()
	}
	return l.Named(string(category))
}
