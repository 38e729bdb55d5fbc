// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/20142995/command-runner/internal/ctxlog"
	"github.com/20142995/command-runner/internal/teereader"
	"github.com/kballard/go-shellquote"
)

const maxBufferSize = 8 * 1024 * 1024 // 8MB per stream

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrEmptyCommand is returned when there is nothing to run.
	ErrEmptyCommand = errors.New("empty command line")
	// ErrCouldNotKillProcess is returned when a process group could not be signalled.
	ErrCouldNotKillProcess = errors.New("could not kill process")
)

// Runner starts command lines in their own process group.
type Runner struct {
	// Shell runs the command line through the platform shell.
	// Otherwise it is split with shell quoting rules and executed directly.
	Shell bool
	// Dir is the working directory, the current one if empty.
	Dir string
	// Env is appended to the inherited environment.
	Env []string
	// MaxOutput caps the captured bytes of each stream. Zero means 8MB.
	MaxOutput int
}

// NewRunner returns a Runner that uses the platform shell.
func NewRunner() *Runner {
	return &Runner{Shell: true}
}

// Execute runs the command line to completion.
// The error is only set when the process could not be started.
func (r *Runner) Execute(ctx context.Context, commandLine string) (*Result, error) {
	h, err := r.Start(ctx, commandLine)
	if err != nil {
		return nil, err
	}

	return h.Wait(), nil
}

// Start spawns the command line and returns immediately.
// Cancelling ctx kills the process group.
func (r *Runner) Start(ctx context.Context, commandLine string) (*Handle, error) {
	logger := ctxlog.Logger(ctx).With("command", commandLine)

	path, argv, attr, err := r.command(commandLine)
	if err != nil {
		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	stdin, err := os.Open(os.DevNull)
	if err != nil {
		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	defer stdin.Close() //nolint:errcheck

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return nil, errors.Join(ErrCouldNotStartProcess, ErrFailedToCreatePipe, err)
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		_ = rOut.Close()
		_ = wOut.Close()

		return nil, errors.Join(ErrCouldNotStartProcess, ErrFailedToCreatePipe, err)
	}

	env := os.Environ()
	env = append(env, r.Env...)

	logger.Debug("starting process", "path", path, "args", argv)

	ps, err := os.StartProcess(path, argv, &os.ProcAttr{
		Dir:   r.Dir,
		Env:   env,
		Files: []*os.File{stdin, wOut, wErr},
		Sys:   attr,
	})

	// The child holds its own copies, ours must go so the readers see EOF.
	_ = wOut.Close()
	_ = wErr.Close()

	if err != nil {
		_ = rOut.Close()
		_ = rErr.Close()

		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	limit := r.MaxOutput
	if limit <= 0 {
		limit = maxBufferSize
	}

	h := newHandle(commandLine, ps, limit)
	h.stdout = teereader.NewLastLineTeeReader(rOut, h.outBuf)

	go h.wait(ctx, rOut, rErr)
	go h.watch(ctx)

	return h, nil
}

// command resolves the executable, its arguments and the process group attributes.
func (r *Runner) command(commandLine string) (string, []string, *syscall.SysProcAttr, error) {
	if r.Shell {
		path, argv, attr := shellCommand(commandLine)
		return path, argv, attr, nil
	}

	argv, err := shellquote.Split(commandLine)
	if err != nil {
		return "", nil, nil, err
	}

	if len(argv) == 0 {
		return "", nil, nil, ErrEmptyCommand
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return "", nil, nil, err
	}

	return path, argv, groupAttr(), nil
}

// SpawnFailure builds the result of a command that never started.
func SpawnFailure(commandLine string, err error) *Result {
	return &Result{
		Command:  commandLine,
		ExitCode: -1,
		Err:      err,
		Finished: time.Now(),
	}
}
