// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/20142995/command-runner/internal/catalog"
	"github.com/20142995/command-runner/internal/ctxlog"
	"github.com/20142995/command-runner/internal/metrics"
	"github.com/20142995/command-runner/internal/process"
	"github.com/20142995/command-runner/internal/progress"
	"github.com/20142995/command-runner/internal/task"
)

// ErrNoTasks is returned when a job would have nothing to run.
var ErrNoTasks = errors.New("no tasks to run")

// Starter spawns a command line and returns its handle without waiting.
// *process.Runner implements it.
type Starter interface {
	Start(ctx context.Context, commandLine string) (*process.Handle, error)
}

var _ Starter = (*process.Runner)(nil)

// Options are the dependencies of an Engine. Zero values are replaced with defaults.
type Options struct {
	// Logger receives engine diagnostics. Defaults to the logger in the Start context.
	Logger *slog.Logger
	// TaskLogger receives one record per finished task. Defaults to discarding them.
	TaskLogger *slog.Logger
	// Runner spawns task processes. Defaults to process.NewRunner().
	Runner Starter
	// Reporter receives job events. Defaults to a NullReporter.
	Reporter progress.Reporter
	// Metrics records task and job counters. Nil disables metrics.
	Metrics *metrics.Metrics
}

// Engine starts jobs. At most one job per engine is active:
// starting a job stops the previous one first.
type Engine struct {
	opts    Options
	mu      sync.Mutex
	current *Job
}

// New creates an Engine.
func New(opts Options) *Engine {
	if opts.TaskLogger == nil {
		opts.TaskLogger = ctxlog.Discard
	}

	if opts.Runner == nil {
		opts.Runner = process.NewRunner()
	}

	if opts.Reporter == nil {
		opts.Reporter = progress.NewNullReporter()
	}

	return &Engine{opts: opts}
}

// Start schedules the tasks on a pool of workers and returns immediately.
// Workers below one are raised to one.
func (e *Engine) Start(ctx context.Context, tasks []task.Task, workers int) (*Job, error) {
	if len(tasks) == 0 {
		return nil, errors.Join(task.ErrConfiguration, ErrNoTasks)
	}

	workers = max(workers, 1)

	logger := e.opts.Logger
	if logger == nil {
		logger = ctxlog.Logger(ctx)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if prev := e.current; prev != nil && !prev.State().Final() {
		logger.Info("stopping previous job", "job", prev.ID())
		prev.Stop()
	}

	job := newJob(ctx, tasks, workers, e.opts, logger)
	e.current = job

	job.logger.Info("job started", "tasks", len(tasks), "workers", workers)

	go job.run()

	return job, nil
}

// StartBatch expands targets and templates into tasks and starts them.
// Configuration errors are returned before anything runs.
func (e *Engine) StartBatch(
	ctx context.Context,
	targets []string,
	templates []catalog.Template,
	workers int,
) (*Job, error) {
	tasks, err := task.Expand(targets, templates)
	if err != nil {
		return nil, err
	}

	return e.Start(ctx, tasks, workers)
}

// Current returns the most recently started job, or nil.
func (e *Engine) Current() *Job {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.current
}
