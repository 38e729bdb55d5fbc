// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	logLevelEnvVar = "CMDRUNNER_LOG_LEVEL"
	taskLogRelPath = "cmdrunner/command_runner.log"
	taskLogPerm    = 0o644
	taskLogDirPerm = 0o755
)

// ErrTaskLog is returned when the task log file cannot be opened.
var ErrTaskLog = errors.New("failed to open task log")

type loggerKey struct{}

// LevelVar holds the level of the console loggers, it is initialised from CMDRUNNER_LOG_LEVEL.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is a pretty console logger writing to stderr, used if no logger is provided.
var DefaultLogger = slog.New(NewPrettyHandler(&slog.HandlerOptions{
	Level: LevelVar,
},
	WithAutoColour(),
	WithDestinationWriter(os.Stderr),
))

// JSONLogger is a machine readable alternative to DefaultLogger.
var JSONLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
	Level: LevelVar,
}))

func init() {
	LevelVar.Set(logLevelFromEnv())
}

// New creates a new context with the given logger.
// If logger is nil, it uses the default logger.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// NewForTUI returns a context whose logger writes uncoloured records to w.
// The terminal UI owns the screen while it runs, so logs are buffered and shown afterwards.
func NewForTUI(ctx context.Context, w io.Writer) context.Context {
	return New(ctx, slog.New(NewPrettyHandler(&slog.HandlerOptions{
		Level: LevelVar,
	}, WithDestinationWriter(w))))
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}

// DefaultTaskLogPath returns the task log location under the XDG state directory,
// creating the parent directory if required.
func DefaultTaskLogPath() (string, error) {
	p, err := xdg.StateFile(taskLogRelPath)
	if err != nil {
		return "", errors.Join(ErrTaskLog, err)
	}

	return p, nil
}

// NewFileLogger opens (appending) a JSON task log at path.
// The task log records one entry per executed command and is always written at info level,
// independent of the console log level.
// The returned closer must be closed once the job has finished.
func NewFileLogger(path string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), taskLogDirPerm); err != nil {
		return nil, nil, errors.Join(ErrTaskLog, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, taskLogPerm)
	if err != nil {
		return nil, nil, errors.Join(ErrTaskLog, err)
	}

	return NewWriterLogger(f), f, nil
}

// NewWriterLogger returns a JSON task logger writing to w.
func NewWriterLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Discard is a logger that drops every record.
var Discard = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))

func logLevelFromEnv() slog.Level {
	switch os.Getenv(logLevelEnvVar) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
