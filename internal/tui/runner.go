// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"sync"

	"github.com/20142995/command-runner/internal/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Runner manages the TUI application and job event integration.
type Runner struct {
	model    *Model
	program  *tea.Program
	reporter *Reporter
	mutex    sync.Mutex
}

// Reporter implements progress.Reporter and forwards events to the TUI.
type Reporter struct {
	program *tea.Program
	closed  bool
	mutex   sync.RWMutex
}

var (
	_ progress.Reporter = (*Reporter)(nil)
	_ progress.Listener = (*Reporter)(nil)
)

// NewReporter creates a new TUI reporter.
func NewReporter(program *tea.Program) *Reporter {
	return &Reporter{
		program: program,
	}
}

// Report implements progress.Reporter.Report.
func (tr *Reporter) Report(event progress.Event) {
	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	if tr.closed || tr.program == nil {
		return
	}

	tr.program.Send(EventMsg{Event: event})
}

// OnEvent lets the reporter listen on a progress.ChannelReporter.
func (tr *Reporter) OnEvent(event progress.Event) {
	tr.Report(event)
}

// Close implements progress.Reporter.Close.
func (tr *Reporter) Close() {
	tr.mutex.Lock()
	defer tr.mutex.Unlock()

	tr.closed = true
}

// NewRunner creates a new TUI runner. Events for the job must be routed to Reporter().
func NewRunner(opts ...tea.ProgramOption) *Runner {
	model := NewModel(nil)
	program := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)

	return &Runner{
		model:    model,
		program:  program,
		reporter: NewReporter(program),
	}
}

// Reporter returns the progress reporter for this TUI runner.
func (r *Runner) Reporter() *Reporter {
	return r.reporter
}

// WaitableJob is a Job that Run can wait on.
type WaitableJob interface {
	Job
	Done() <-chan struct{}
}

// Run shows the job until the user quits, then waits for the job to wind down.
// Quitting while the job runs stops it. A cancelled context stops the job and closes the UI.
func (r *Runner) Run(ctx context.Context, job WaitableJob) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.model.job = job
	r.model.completed, r.model.total = job.Progress()

	tuiDone := make(chan error, 1)

	go func() {
		_, err := r.program.Run()
		tuiDone <- err
	}()

	var err error

	select {
	case err = <-tuiDone:
		// User pressed 'q', the model has already stopped a running job.
	case <-ctx.Done():
		job.Stop()
		r.program.Quit()

		err = <-tuiDone
	}

	r.reporter.Close()

	if !job.State().Final() {
		job.Stop()
	}

	<-job.Done()

	return err
}
