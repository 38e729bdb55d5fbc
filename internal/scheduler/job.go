// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/20142995/command-runner/internal/ansimarkup"
	"github.com/20142995/command-runner/internal/ctxlog"
	"github.com/20142995/command-runner/internal/metrics"
	"github.com/20142995/command-runner/internal/process"
	"github.com/20142995/command-runner/internal/progress"
	"github.com/20142995/command-runner/internal/task"
	"github.com/hashicorp/go-multierror"
	"github.com/segmentio/ksuid"
	"golang.org/x/sync/errgroup"
)

const percent = 100

// LiveTask is a snapshot of a running task.
type LiveTask struct {
	Task     task.Task
	Pid      int
	Started  time.Time
	LastLine string
}

// Job is one run over a set of tasks.
type Job struct {
	id       string
	tasks    []task.Task
	workers  int
	logger   *slog.Logger
	tasksLog *slog.Logger
	runner   Starter
	reporter progress.Reporter
	metrics  *metrics.Metrics
	created  time.Time

	// ctx carries the job logger to run and Stop.
	ctx context.Context

	stateMu sync.Mutex
	state   State

	liveMu sync.Mutex
	live   map[*process.Handle]task.Task

	// emitMu serialises the completion counter with event emission,
	// so progress is non-decreasing.
	emitMu    sync.Mutex
	completed int
	results   []*process.Result

	done chan struct{}
}

func newJob(ctx context.Context, tasks []task.Task, workers int, opts Options, logger *slog.Logger) *Job {
	id := ksuid.New().String()
	logger = logger.With("job", id)

	return &Job{
		id:       id,
		tasks:    slices.Clone(tasks),
		workers:  workers,
		logger:   logger,
		tasksLog: opts.TaskLogger.With("job", id),
		runner:   opts.Runner,
		reporter: opts.Reporter,
		metrics:  opts.Metrics,
		created:  time.Now(),
		ctx:      ctxlog.New(ctx, logger),
		state:    StateRunning,
		live:     make(map[*process.Handle]task.Task),
		results:  make([]*process.Result, len(tasks)),
		done:     make(chan struct{}),
	}
}

// ID returns the unique, time ordered id of the job.
func (j *Job) ID() string {
	return j.id
}

// Tasks returns the tasks of the job in submission order.
func (j *Job) Tasks() []task.Task {
	return slices.Clone(j.tasks)
}

// Workers returns the size of the worker pool.
func (j *Job) Workers() int {
	return j.workers
}

// State returns the current lifecycle state.
func (j *Job) State() State {
	j.stateMu.Lock()
	defer j.stateMu.Unlock()

	return j.state
}

func (j *Job) running() bool {
	return j.State() == StateRunning
}

// Progress returns the number of finished tasks and the total.
func (j *Job) Progress() (int, int) {
	j.emitMu.Lock()
	defer j.emitMu.Unlock()

	return j.completed, len(j.tasks)
}

// Done is closed when every worker has returned.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until every worker has returned and reports the final state.
func (j *Job) Wait() State {
	<-j.done
	return j.State()
}

// Results returns the result of each task, in task order.
// Tasks that were abandoned after Stop have a nil result.
func (j *Job) Results() []*process.Result {
	j.emitMu.Lock()
	defer j.emitMu.Unlock()

	return slices.Clone(j.results)
}

// Live returns the tasks whose processes are running, oldest first.
func (j *Job) Live() []LiveTask {
	j.liveMu.Lock()

	res := make([]LiveTask, 0, len(j.live))
	for h, t := range j.live {
		res = append(res, LiveTask{Task: t, Pid: h.Pid(), Started: h.Started(), LastLine: h.LastLine(0)})
	}

	j.liveMu.Unlock()

	slices.SortFunc(res, func(a, b LiveTask) int { return a.Started.Compare(b.Started) })

	return res
}

// Stop stops submitting tasks and kills every live process group.
// It does not wait for the processes to exit and is safe to call repeatedly.
func (j *Job) Stop() {
	j.stateMu.Lock()

	if j.state != StateRunning {
		j.stateMu.Unlock()
		return
	}

	j.state = StateStopping
	j.stateMu.Unlock()

	j.liveMu.Lock()
	handles := make([]*process.Handle, 0, len(j.live))

	for h := range j.live {
		handles = append(handles, h)
	}

	j.liveMu.Unlock()

	j.logger.Info("stopping job", "live", len(handles))

	ctx := context.WithoutCancel(j.ctx)

	var err error

	for _, h := range handles {
		if kerr := h.Kill(ctx); kerr != nil {
			err = multierror.Append(err, kerr)
		}
	}

	if err != nil {
		j.logger.Error("could not kill every process", "error", err)
	}
}

// run is the coordination goroutine.
func (j *Job) run() {
	ctx := j.ctx

	var g errgroup.Group

	g.SetLimit(j.workers)

	for i, t := range j.tasks {
		if ctx.Err() != nil {
			j.Stop()
		}

		if !j.running() {
			j.logger.Debug("job stopped, abandoning remaining tasks", "remaining", len(j.tasks)-i)
			break
		}

		g.Go(func() error {
			j.runTask(ctx, i, t)
			return nil
		})
	}

	_ = g.Wait()

	j.finish()
}

func (j *Job) runTask(ctx context.Context, i int, t task.Task) {
	if !j.running() || ctx.Err() != nil {
		return
	}

	h, err := j.runner.Start(ctx, t.Command)
	if err != nil {
		j.complete(i, t, process.SpawnFailure(t.Command, err))
		return
	}

	j.register(ctx, h, t)

	j.reporter.Report(progress.Event{
		JobID:     j.id,
		Type:      progress.EventStarted,
		Timestamp: time.Now(),
		Data:      progress.EventData{Task: t.String(), Command: t.Command, Pid: h.Pid()},
	})

	res := h.Wait()

	j.unregister(h)
	j.complete(i, t, res)
}

// register adds a live handle. A handle registered after Stop is killed straight away.
func (j *Job) register(ctx context.Context, h *process.Handle, t task.Task) {
	j.liveMu.Lock()
	j.live[h] = t
	j.liveMu.Unlock()

	j.metrics.ProcessStarted()

	if !j.running() {
		if err := h.Kill(ctx); err != nil {
			j.logger.Error("could not kill late process", "pid", h.Pid(), "error", err)
		}
	}
}

func (j *Job) unregister(h *process.Handle) {
	j.liveMu.Lock()
	delete(j.live, h)
	j.liveMu.Unlock()

	j.metrics.ProcessExited()
}

// complete logs the result, emits its output and advances progress.
func (j *Job) complete(i int, t task.Task, res *process.Result) {
	j.logResult(t, res)
	j.metrics.TaskFinished(string(res.Status()), res.Duration())

	text := res.Text()
	markup := ansimarkup.Translate(text)

	j.emitMu.Lock()
	defer j.emitMu.Unlock()

	j.completed++
	j.results[i] = res

	j.reporter.Report(progress.Event{
		JobID:     j.id,
		Type:      progress.EventOutput,
		Timestamp: time.Now(),
		Data: progress.EventData{
			Task:    t.String(),
			Command: t.Command,
			Pid:     res.Pid,
			Text:    text,
			Markup:  markup,
			Result:  res,
		},
	})

	if !j.running() {
		return
	}

	j.reporter.Report(progress.Event{
		JobID:     j.id,
		Type:      progress.EventProgress,
		Timestamp: time.Now(),
		Data:      j.progressData(),
	})
}

// progressData must be called with emitMu held.
func (j *Job) progressData() progress.EventData {
	total := len(j.tasks)

	return progress.EventData{
		Percent:   j.completed * percent / total,
		Completed: j.completed,
		Total:     total,
	}
}

func (j *Job) logResult(t task.Task, res *process.Result) {
	if res.Err != nil {
		j.tasksLog.Error("command failed",
			"task", t.String(),
			"command", res.Command,
			"error", res.Err.Error(),
		)

		return
	}

	j.tasksLog.Info("command finished",
		"task", t.String(),
		"command", res.Command,
		"status", res.ExitCode,
		"killed", res.Killed,
		"duration", res.Duration().String(),
		"stdout", res.Stdout,
		"stderr", res.Stderr,
	)
}

// finish moves the job to its final state and emits the matching event.
func (j *Job) finish() {
	j.stateMu.Lock()

	var typ progress.EventType

	switch j.state {
	case StateRunning:
		j.state = StateCompleted
		typ = progress.EventCompleted
	default:
		j.state = StateStopped
		typ = progress.EventStopped
	}

	state := j.state
	j.stateMu.Unlock()

	j.emitMu.Lock()
	data := j.progressData()
	j.emitMu.Unlock()

	j.metrics.JobFinished(state.String())
	j.logger.Info("job finished", "state", state.String(), "completed", data.Completed, "total", data.Total,
		"elapsed", time.Since(j.created).Round(time.Millisecond).String())

	j.reporter.Report(progress.Event{
		JobID:     j.id,
		Type:      typ,
		Timestamp: time.Now(),
		Data:      data,
	})

	close(j.done)
}
