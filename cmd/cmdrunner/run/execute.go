// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/20142995/command-runner/internal/catalog"
	"github.com/20142995/command-runner/internal/ctxlog"
	"github.com/20142995/command-runner/internal/metrics"
	"github.com/20142995/command-runner/internal/process"
	"github.com/20142995/command-runner/internal/progress"
	"github.com/20142995/command-runner/internal/report"
	"github.com/20142995/command-runner/internal/scheduler"
	"github.com/20142995/command-runner/internal/signalbroker"
	"github.com/20142995/command-runner/internal/task"
	"github.com/20142995/command-runner/internal/tui"
)

const eventBufferSize = 64

var (
	// ErrTasksFailed is returned when at least one task did not succeed.
	ErrTasksFailed = errors.New("some commands failed, see above for details")
	// ErrJobStopped is returned when the job was stopped before every task ran.
	ErrJobStopped = errors.New("job stopped")
	// ErrMarkupOut is returned when the markup file cannot be created.
	ErrMarkupOut = errors.New("failed to create markup output file")
)

// Options are the parsed flags of the run command.
type Options struct {
	Catalog     string
	Targets     []string
	TargetsFile string
	Commands    []string
	Workers     string
	NoShell     bool
	TUI         bool
	MarkupOut   string
	LogFile     string
	MetricsAddr string
	Summary     *report.OutputOptions
}

// Streams are the standard streams of the command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func (s *Streams) defaults() {
	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}
}

// Execute loads the catalog, collects targets, runs the job and writes the summary.
func Execute(ctx context.Context, opts Options, streams Streams) error {
	streams.defaults()
	logger := ctxlog.Logger(ctx)

	cat, err := catalog.Load(ctx, opts.Catalog)
	if err != nil {
		return err
	}

	var templates []catalog.Template

	if len(opts.Commands) > 0 {
		templates, err = cat.Select(opts.Commands...)
		if err != nil {
			return errors.Join(task.ErrConfiguration, err)
		}
	}

	targets, err := collectTargets(ctx, opts, streams.In)
	if err != nil {
		return err
	}

	tasks, err := task.Expand(targets, templates)
	if err != nil {
		return err
	}

	taskLog, closeLog, err := openTaskLog(opts.LogFile)
	if err != nil {
		return err
	}

	defer closeLog.Close() //nolint:errcheck

	var m *metrics.Metrics

	if opts.MetricsAddr != "" {
		m = metrics.New()

		metricsCtx, stopMetrics := context.WithCancel(ctx)
		defer stopMetrics()

		go func() {
			if err := m.Serve(metricsCtx, opts.MetricsAddr); err != nil {
				logger.Error("metrics server failed", "addr", opts.MetricsAddr, "error", err)
			}
		}()
	}

	reporter := progress.NewChannelReporter(ctx, eventBufferSize)
	defer reporter.Close()

	var markup *report.MarkupWriter

	if opts.MarkupOut != "" {
		f, err := os.Create(opts.MarkupOut)
		if err != nil {
			return errors.Join(ErrMarkupOut, err)
		}

		defer f.Close() //nolint:errcheck

		markup = report.NewMarkupWriter(f)
		reporter.Listen(markup)
	}

	var (
		ui     *tui.Runner
		logBuf *bytes.Buffer
		jobCtx = ctx
	)

	if opts.TUI {
		logger.Info("starting interactive TUI mode")

		logBuf = new(bytes.Buffer)
		jobCtx = ctxlog.NewForTUI(ctx, logBuf)
		ui = tui.NewRunner()
		reporter.Listen(ui.Reporter())
	} else {
		reporter.Listen(report.NewPrinter(streams.Out, streams.Err))
	}

	workers := scheduler.DefaultWorkers()
	if opts.Workers != "" {
		workers = scheduler.ParseWorkers(opts.Workers)
	}

	engine := scheduler.New(scheduler.Options{
		TaskLogger: taskLog,
		Runner:     &process.Runner{Shell: !opts.NoShell},
		Reporter:   reporter,
		Metrics:    m,
	})

	job, err := engine.Start(jobCtx, tasks, workers)
	if err != nil {
		return err
	}

	stopper := signalbroker.StopperFrom(ctx)
	stopper.Set(job.Stop)

	defer stopper.Set(nil)

	if ui != nil {
		err = ui.Run(jobCtx, job)
		logBuf.WriteTo(streams.Err) //nolint:errcheck

		if err != nil {
			logger.Error("TUI execution error", "error", err)
		}
	}

	state := job.Wait()
	reporter.Close()

	if markup != nil {
		if err := markup.Err(); err != nil {
			logger.Error("markup output incomplete", "path", opts.MarkupOut, "error", err)
		}
	}

	results := job.Results()

	fmt.Fprintln(streams.Out) //nolint:errcheck

	if err := report.WriteSummary(streams.Out, job.Tasks(), results, opts.Summary); err != nil {
		return err
	}

	switch {
	case state == scheduler.StateStopped:
		return ErrJobStopped
	case report.Failed(results):
		return ErrTasksFailed
	}

	return nil
}

// openTaskLog opens the task log at path, or at the default location when path is empty.
func openTaskLog(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		p, err := ctxlog.DefaultTaskLogPath()
		if err != nil {
			return nil, nil, err
		}

		path = p
	}

	return ctxlog.NewFileLogger(path)
}
