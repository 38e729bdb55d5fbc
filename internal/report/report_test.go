// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/20142995/command-runner/internal/catalog"
	"github.com/20142995/command-runner/internal/color"
	"github.com/20142995/command-runner/internal/process"
	"github.com/20142995/command-runner/internal/progress"
	"github.com/20142995/command-runner/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tasks(targets ...string) []task.Task {
	tmpl := catalog.Template{Name: "Ping", Command: "ping {target}"}

	res := make([]task.Task, 0, len(targets))
	for _, target := range targets {
		res = append(res, task.Task{Target: target, Template: tmpl, Command: "ping " + target})
	}

	return res
}

func TestWriteSummary(t *testing.T) {
	results := []*process.Result{
		{Command: "ping a", Stdout: "PING a"},
		{Command: "ping b", ExitCode: 2, Stderr: "unknown host b\nretry later"},
		{Command: "ping c", ExitCode: -1, Err: errors.New("executable file not found")},
		{Command: "ping d", ExitCode: -1, Killed: true},
		nil,
	}

	var buf bytes.Buffer

	require.NoError(t, WriteSummary(&buf, tasks("a", "b", "c", "d", "e"), results, nil))

	out := color.Strip(buf.String())

	assert.Contains(t, out, "✓ Ping(a)\n")
	assert.NotContains(t, out, "PING a", "stdout is hidden by default")
	assert.Contains(t, out, "✗ Ping(b) (exit code: 2)\n")
	assert.Contains(t, out, "     unknown host b\n     retry later\n")
	assert.Contains(t, out, "✗ Ping(c)\n  ➜ Error: executable file not found\n")
	assert.Contains(t, out, "✗ Ping(d) (killed)\n")
	assert.Contains(t, out, "~ Ping(e) (not run)\n")
}

func TestWriteSummary_SuccessDetails(t *testing.T) {
	var buf bytes.Buffer

	opts := &OutputOptions{IncludeStdOut: true, IncludeStdErr: true, ShowSuccessDetails: true}
	results := []*process.Result{{Command: "ping a", Stdout: "PING a\n64 bytes"}}

	require.NoError(t, WriteSummary(&buf, tasks("a"), results, opts))

	out := color.Strip(buf.String())
	assert.Contains(t, out, "➜ Output:\n     PING a\n     64 bytes\n")
}

func TestFailed(t *testing.T) {
	assert.False(t, Failed(nil))
	assert.False(t, Failed([]*process.Result{{}, nil}))
	assert.True(t, Failed([]*process.Result{{}, {ExitCode: 1}}))
	assert.True(t, Failed([]*process.Result{{Err: errors.New("boom")}}))
}

func TestPrinter(t *testing.T) {
	var out, status bytes.Buffer

	p := NewPrinter(&out, &status)

	p.OnEvent(progress.Event{Type: progress.EventStarted})
	p.OnEvent(progress.Event{Type: progress.EventOutput, Data: progress.EventData{Text: "$ ping a\nPING a\n\n"}})
	p.OnEvent(progress.Event{Type: progress.EventProgress, Data: progress.EventData{Percent: 50, Completed: 1, Total: 2}})
	p.OnEvent(progress.Event{Type: progress.EventCompleted, Data: progress.EventData{Percent: 100, Completed: 2, Total: 2}})

	assert.Equal(t, "$ ping a\nPING a\n\n\n", out.String())

	st := color.Strip(status.String())
	assert.Contains(t, st, "[ 50%] 1/2\n")
	assert.Contains(t, st, "job completed\n")

	status.Reset()
	NewPrinter(&out, nil).OnEvent(progress.Event{Type: progress.EventProgress})
	assert.Empty(t, status.String())

	p.OnEvent(progress.Event{Type: progress.EventStopped, Data: progress.EventData{Completed: 1, Total: 2}})
	assert.Contains(t, color.Strip(status.String()), "job stopped 1/2\n")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestMarkupWriter(t *testing.T) {
	var buf bytes.Buffer

	mw := NewMarkupWriter(&buf)
	mw.OnEvent(progress.Event{Type: progress.EventProgress})
	mw.OnEvent(progress.Event{Type: progress.EventOutput, Data: progress.EventData{Markup: "$ echo a<br>a<br></span>"}})
	mw.OnEvent(progress.Event{Type: progress.EventOutput, Data: progress.EventData{Markup: "$ echo b<br>b<br></span>"}})

	require.NoError(t, mw.Err())
	assert.Equal(t, "$ echo a<br>a<br></span>\n$ echo b<br>b<br></span>\n", buf.String())

	bad := NewMarkupWriter(failingWriter{})
	bad.OnEvent(progress.Event{Type: progress.EventOutput})
	bad.OnEvent(progress.Event{Type: progress.EventOutput})
	require.ErrorIs(t, bad.Err(), ErrWriteMarkup)
}
