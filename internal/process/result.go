// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"strings"
	"time"
)

// Status summarises how a command ended.
type Status string

const (
	// StatusSuccess is an exit code of zero.
	StatusSuccess Status = "success"
	// StatusFailed is a non-zero exit code.
	StatusFailed Status = "failed"
	// StatusError is a process that did not start, could not be waited for or was killed.
	StatusError Status = "error"
)

// Result is the outcome of one command line.
type Result struct {
	Command   string
	Pid       int
	Stdout    string // Normalized
	Stderr    string // Normalized
	ExitCode  int    // -1 when the process did not start or was terminated by a signal
	Err       error
	Killed    bool
	Truncated bool
	Started   time.Time
	Finished  time.Time
}

// Status classifies the result.
func (r *Result) Status() Status {
	switch {
	case r.Err != nil || r.Killed:
		return StatusError
	case r.ExitCode != 0:
		return StatusFailed
	}

	return StatusSuccess
}

// Duration is the wall time between spawn and exit.
func (r *Result) Duration() time.Duration {
	if r.Started.IsZero() {
		return 0
	}

	return r.Finished.Sub(r.Started)
}

// Text renders the result the way it is shown to users:
// the prompt and command line, stdout, then stderr.
// A command that failed to run shows the error instead of its output.
func (r *Result) Text() string {
	var sb strings.Builder

	sb.WriteString("$ ")
	sb.WriteString(r.Command)
	sb.WriteByte('\n')

	if r.Err != nil {
		sb.WriteString(r.Err.Error())
		sb.WriteByte('\n')

		return sb.String()
	}

	sb.WriteString(r.Stdout)
	sb.WriteByte('\n')
	sb.WriteString(r.Stderr)
	sb.WriteByte('\n')

	return sb.String()
}
