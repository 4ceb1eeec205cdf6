// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevelEnvVar names the environment variable read for the initial log level.
const LogLevelEnvVar = "BREC_LOG_LEVEL"

// Supported log formats.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

var (
	// ErrUnknownLevel is returned by ParseLevel for an unrecognised level name.
	ErrUnknownLevel = errors.New("unknown log level")
	// ErrUnknownFormat is returned by NewLogger for an unrecognised format.
	ErrUnknownFormat = errors.New("unknown log format")
)

type loggerKey struct{}

// LevelVar is the level shared by every logger created by this package.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is used when the context carries no logger.
var DefaultLogger *slog.Logger

func init() {
	if lvl, err := ParseLevel(os.Getenv(LogLevelEnvVar)); err == nil {
		LevelVar.Set(lvl)
	} else {
		LevelVar.Set(slog.LevelWarn)
	}

	DefaultLogger, _ = NewLogger(FormatPretty, os.Stderr)
}

// NewLogger returns a logger writing to w in the given format, using LevelVar.
func NewLogger(format string, w io.Writer) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: LevelVar}

	switch strings.ToLower(format) {
	case "", FormatPretty:
		return slog.New(NewPrettyHandler(opts, WithDestinationWriter(w), WithAutoColour())), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ParseLevel converts a level name such as "debug" or "WARN" to a slog.Level.
// An empty string is WARN.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "", "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// SetLevel parses s and applies it to LevelVar.
func SetLevel(s string) error {
	lvl, err := ParseLevel(s)
	if err != nil {
		return err
	}

	LevelVar.Set(lvl)

	return nil
}

// New returns a copy of ctx carrying logger.
// If logger is nil, it uses the default logger.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Debug logs at debug level with the logger from ctx.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).DebugContext(ctx, msg, args...)
}

// Info logs at info level with the logger from ctx.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).InfoContext(ctx, msg, args...)
}

// Warn logs at warn level with the logger from ctx.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).WarnContext(ctx, msg, args...)
}

// Error logs at error level with the logger from ctx.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).ErrorContext(ctx, msg, args...)
}
