// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/20142995/command-runner/internal/color"
	"github.com/20142995/command-runner/internal/process"
	"github.com/20142995/command-runner/internal/task"
)

// OutputOptions controls what is included in the summary.
type OutputOptions struct {
	IncludeStdOut      bool // Whether to include stdout in the output
	IncludeStdErr      bool // Whether to include stderr in the output
	ShowSuccessDetails bool // Whether to show details for successful commands
}

// DefaultOutputOptions returns a default set of output options.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{
		IncludeStdOut:      false,
		IncludeStdErr:      true,
		ShowSuccessDetails: false,
	}
}

// WriteSummary writes one status line per task. Results are matched to tasks by index,
// a nil result is a task that never ran because the job was stopped.
func WriteSummary(w io.Writer, tasks []task.Task, results []*process.Result, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	for i, t := range tasks {
		var r *process.Result
		if i < len(results) {
			r = results[i]
		}

		if err := writeResult(w, t, r, options); err != nil {
			return err
		}
	}

	return nil
}

func writeResult(w io.Writer, t task.Task, r *process.Result, options *OutputOptions) error {
	var statusStr, labelPrefix string

	switch {
	case r == nil:
		statusStr = color.Colorize("~", color.FgYellow)
		labelPrefix = color.ControlString(color.Bold, color.FgYellow)
	case r.Status() == process.StatusSuccess:
		statusStr = color.Colorize("✓", color.FgGreen)
		labelPrefix = color.ControlString(color.Bold, color.FgGreen)
	default:
		statusStr = color.Colorize("✗", color.FgRed)
		labelPrefix = color.ControlString(color.Bold, color.FgRed)
	}

	reset := color.ControlString(color.Reset)
	if !color.Enabled() {
		labelPrefix, reset = "", ""
	}

	if _, err := fmt.Fprintf(w, "%s %s%s%s", statusStr, labelPrefix, t.String(), reset); err != nil {
		return err
	}

	switch {
	case r == nil:
		fmt.Fprint(w, " (not run)") // nolint:errcheck
	case r.Killed:
		fmt.Fprint(w, " (killed)") // nolint:errcheck
	case r.Err == nil && r.ExitCode != 0:
		fmt.Fprintf(w, " (exit code: %d)", r.ExitCode) // nolint:errcheck
	}

	fmt.Fprintln(w) // nolint:errcheck

	if r == nil {
		return nil
	}

	if r.Err != nil {
		fmt.Fprintf(w, "  %s %s\n", color.Colorize("➜ Error:", color.FgRed), r.Err.Error()) // nolint:errcheck
	}

	shouldShowDetails := r.Status() != process.StatusSuccess || options.ShowSuccessDetails

	if shouldShowDetails && options.IncludeStdOut && r.Stdout != "" {
		fmt.Fprintln(w, "  ➜ Output:")                  // nolint:errcheck
		fmt.Fprint(w, formatOutput(r.Stdout, "     ")) // nolint:errcheck
	}

	if shouldShowDetails && options.IncludeStdErr && r.Stderr != "" {
		fmt.Fprintf(w, "  %s\n", color.Colorize("➜ Error Output:", color.FgHiRed)) // nolint:errcheck
		fmt.Fprint(w, formatOutput(r.Stderr, "     "))                           // nolint:errcheck
	}

	return nil
}

// formatOutput formats multi-line output with proper indentation.
func formatOutput(output string, indent string) string {
	sb := strings.Builder{}
	lines := strings.Split(output, "\n")
	sb.Grow(len(output) + len(lines)*len(indent))

	for _, line := range lines {
		if line == "" {
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

// Failed reports whether any result is not a success. Tasks that never ran do not count.
func Failed(results []*process.Result) bool {
	for _, r := range results {
		if r != nil && r.Status() != process.StatusSuccess {
			return true
		}
	}

	return false
}
