// Package logging builds the structured logger used by the command-line
// tools.
package logging

import (
	"fmt"

	"github.com/samuelfneumann/softdqn/agent/nonlinear/discrete/softdqn"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a structured logger configured for JSON output at the
// given level ("debug", "info", "warn" or "error").
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// ConfigFields returns the hyperparameters of a Config as zap fields
func ConfigFields(c softdqn.Config) []zap.Field {
	return []zap.Field{
		zap.Int("buffer_size", c.BufferSize()),
		zap.Int("batch_size", c.BatchSize()),
		zap.Float64("gamma", c.Gamma()),
		zap.Float64("tau", c.Tau()),
		zap.Float64("learning_rate", c.LearningRate()),
		zap.Int("update_every", c.UpdateEvery()),
		zap.Int64("seed", c.Seed()),
	}
}
