// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui provides a real-time Terminal User Interface (TUI) for monitoring
// a running job. It displays a progress bar, the running tasks with the last line of
// their output, and a scrollable pane holding the output of every finished task.
//
// The TUI is fed by the job's event stream through a progress.Reporter adapter,
// the list of running tasks is polled from the job.
package tui
