// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger that can be used to log messages.
// It uses the slog package for structured logging and supports different log levels.
//
// The default is a pretty console handler to format the log messages in a human-readable way.
// The console level is read from the CMDRUNNER_LOG_LEVEL environment variable
// (DEBUG, INFO, WARN or ERROR, defaulting to INFO).
//
// The package also builds the task log, a JSON file that receives one record per executed command.
package ctxlog
