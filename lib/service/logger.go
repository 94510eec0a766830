// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"log/slog"
	"os"
)

// NewLogger creates a JSON-structured logger writing to stderr at the
// given minimum level and installs it as the slog default, so library
// code that logs through slog.Default() lands in the same stream.
func NewLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}
