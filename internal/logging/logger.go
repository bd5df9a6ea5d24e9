// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.SugaredLogger
}

// NewLogger creates a production zap logger at the given level. An unknown
// level string falls back to error.
func NewLogger(level string) *Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	logger := new(Logger)
	logger.SugaredLogger = l.Sugar()

	return logger
}

func NewNoopLogger() *Logger {
	logger := new(Logger)
	logger.SugaredLogger = zap.NewNop().Sugar()

	return logger
}
