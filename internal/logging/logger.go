// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// NewLogger creates a production JSON logger; an unparseable level falls back to error.
func NewLogger(l string) *Logger {
	level, parseErr := zapcore.ParseLevel(l)
	if parseErr != nil {
		level = zapcore.ErrorLevel
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(level)
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	c.EncoderConfig.TimeKey = "@timestamp"

	z, err := c.Build()
	if err != nil {
		panic(err)
	}

	logger := new(Logger)
	logger.SugaredLogger = z.Sugar()

	// security events are always recorded, whatever the configured level
	sc := c
	sc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sz, err := sc.Build()
	if err != nil {
		panic(err)
	}
	logger.security = &SecurityLogger{l: sz}

	if parseErr != nil {
		logger.Errorf("invalid log level %q, defaulting to error", l)
	}

	return logger
}
