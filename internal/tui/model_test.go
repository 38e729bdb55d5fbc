// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"testing"
	"time"

	"github.com/20142995/command-runner/internal/catalog"
	"github.com/20142995/command-runner/internal/process"
	"github.com/20142995/command-runner/internal/progress"
	"github.com/20142995/command-runner/internal/scheduler"
	"github.com/20142995/command-runner/internal/task"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	stops int
	state scheduler.State
	live  []scheduler.LiveTask
}

func (f *fakeJob) ID() string { return "job-1" }
func (f *fakeJob) Stop() { f.stops++; f.state = scheduler.StateStopping }
func (f *fakeJob) State() scheduler.State { return f.state }
func (f *fakeJob) Live() []scheduler.LiveTask { return f.live }
func (f *fakeJob) Progress() (int, int) { return 0, 4 }
func (f *fakeJob) Done() <-chan struct{} { return nil }

func ping(target string) task.Task {
	return task.Task{
		Target:   target,
		Template: catalog.Template{Name: "Ping", Command: "ping {target}"},
		Command:  "ping " + target,
	}
}

func outputEvent(text string, exitCode int) progress.Event {
	return progress.Event{
		Type:      progress.EventOutput,
		Timestamp: time.Now(),
		Data: progress.EventData{
			Text:   text,
			Result: &process.Result{ExitCode: exitCode},
		},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m := NewModel(&fakeJob{})

	assert.Equal(t, 4, m.total)
	assert.Equal(t, 0, m.completed)
	assert.False(t, m.finished)
	assert.Contains(t, m.View(), "Command Runner job-1")
	assert.Contains(t, m.View(), "0/4 done")
}

func TestModel_OutputBlocksAlternate(t *testing.T) {
	m := NewModel(&fakeJob{})

	m.Update(EventMsg{Event: outputEvent("$ ping a\nPING a\n\n", 0)})
	m.Update(EventMsg{Event: outputEvent("$ ping b\n\nunknown host\n", 2)})

	require.Len(t, m.blocks, 2)
	assert.Equal(t, 1, m.failed)
	assert.NotEqual(t, m.blockStyle(0).GetBackground(), m.blockStyle(1).GetBackground())
	assert.Equal(t, m.blockStyle(0).GetBackground(), m.blockStyle(2).GetBackground())
	assert.Contains(t, m.viewport.View(), "PING a")
}

func TestModel_Progress(t *testing.T) {
	m := NewModel(&fakeJob{})

	m.Update(EventMsg{Event: progress.Event{
		Type: progress.EventProgress,
		Data: progress.EventData{Percent: 50, Completed: 2, Total: 4},
	}})

	assert.Equal(t, 50, m.percent)
	assert.Contains(t, m.View(), "2/4 done")
	assert.Contains(t, m.View(), "50%")
	assert.False(t, m.finished)

	m.Update(EventMsg{Event: progress.Event{
		Type: progress.EventCompleted,
		Data: progress.EventData{Percent: 100, Completed: 4, Total: 4},
	}})

	assert.True(t, m.finished)
	assert.False(t, m.stopped)
	assert.Contains(t, m.View(), "Completed: 4/4 done")
}

func TestModel_StoppedEvent(t *testing.T) {
	m := NewModel(&fakeJob{})

	m.Update(EventMsg{Event: progress.Event{Type: progress.EventStopped}})

	assert.True(t, m.finished)
	assert.True(t, m.stopped)
	assert.Contains(t, m.View(), "Stopped")
}

func TestModel_StopKey(t *testing.T) {
	job := &fakeJob{}
	m := NewModel(job)

	_, cmd := m.Update(key("s"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, job.stops)
	assert.True(t, m.stopped)
	assert.Contains(t, m.View(), "Stopping")
}

func TestModel_QuitKey(t *testing.T) {
	tests := []struct {
		name      string
		finished  bool
		wantStops int
	}{
		{name: "quit while running stops the job", wantStops: 1},
		{name: "quit after completion", finished: true, wantStops: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &fakeJob{}
			m := NewModel(job)
			m.finished = tt.finished

			_, cmd := m.Update(key("q"))
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Equal(t, tt.wantStops, job.stops)
			assert.True(t, m.quitting)
			assert.Equal(t, "Shutting down...\n", m.View())
		})
	}
}

func TestModel_TickRefreshesLiveTasks(t *testing.T) {
	job := &fakeJob{live: []scheduler.LiveTask{
		{Task: ping("example.com"), Pid: 42, Started: time.Now(), LastLine: "64 bytes from example.com"},
	}}
	m := NewModel(job)

	_, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd, "ticks continue while the job runs")

	view := m.View()
	assert.Contains(t, view, "Ping(example.com)")
	assert.Contains(t, view, "64 bytes from example.com")
	assert.Contains(t, view, "Running 1")

	m.finished = true
	_, cmd = m.Update(tickMsg(time.Now()))
	assert.Nil(t, cmd)
}

func TestModel_WindowSize(t *testing.T) {
	m := NewModel(&fakeJob{})

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 118, m.viewport.Width)
	assert.Equal(t, 32, m.viewport.Height)
	assert.Equal(t, 116, m.bar.Width)

	m.Update(tea.WindowSizeMsg{Width: 1, Height: 1})
	assert.Equal(t, minViewport, m.viewport.Height)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{in: "short", n: 10, want: "short"},
		{in: "exactly", n: 7, want: "exactly"},
		{in: "a longer line", n: 8, want: "a lon..."},
		{in: "来自 example.com 的回复", n: 6, want: "来自 ..."},
		{in: "abcdef", n: 2, want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.n))
		})
	}
}

func TestReporter(t *testing.T) {
	reporter := &Reporter{}

	event := progress.Event{Type: progress.EventStarted, Timestamp: time.Now()}

	assert.NotPanics(t, func() {
		reporter.Report(event)
		reporter.OnEvent(event)
		reporter.Close()
		reporter.Report(event)
	})
}
