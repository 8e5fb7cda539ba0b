// Package logging provides structured logging using uber/zap.
//
// Production mode writes JSON to stderr; development mode writes colored
// console output. Stdout is left alone because the splice command may be
// writing its payload there.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("transfer complete", zap.Int("bytes", n))
//	logger.Error("transfer failed", zap.Error(err))
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger at the given level ("debug", "info", "warn",
// "error"). An empty level means info.
func New(level string, development bool) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// NewDefault returns a production logger at info level, falling back to a
// no-op logger if zap cannot open stderr.
func NewDefault() *zap.Logger {
	logger, err := New("info", false)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
