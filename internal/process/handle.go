// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/20142995/command-runner/internal/ctxlog"
	"github.com/20142995/command-runner/internal/teereader"
	"github.com/20142995/command-runner/internal/textdecode"
	"github.com/hashicorp/go-multierror"
)

// Handle is a running process group.
type Handle struct {
	command string
	pid     int
	ps      *os.Process
	started time.Time
	stdout  *teereader.LastLineTeeReader
	outBuf  *boundedBuffer
	errBuf  *boundedBuffer
	killed  atomic.Bool
	done    chan struct{}
	result  *Result
}

func newHandle(command string, ps *os.Process, limit int) *Handle {
	return &Handle{
		command: command,
		pid:     ps.Pid,
		ps:      ps,
		started: time.Now(),
		outBuf:  &boundedBuffer{max: limit},
		errBuf:  &boundedBuffer{max: limit},
		done:    make(chan struct{}),
	}
}

// Pid returns the process id, which is also the process group id.
func (h *Handle) Pid() int {
	return h.pid
}

// Command returns the command line the process was started with.
func (h *Handle) Command() string {
	return h.command
}

// Started returns the spawn time.
func (h *Handle) Started() time.Time {
	return h.started
}

// LastLine returns the last complete line written to stdout so far.
func (h *Handle) LastLine(maxRunes int) string {
	return h.stdout.LastLine(maxRunes)
}

// Done is closed when the process has exited and its output is collected.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the process exits and returns its result.
func (h *Handle) Wait() *Result {
	<-h.done
	return h.result
}

// Kill terminates the process group and any descendants that left it.
// It is safe to call more than once and after the process has exited.
// Processes that are already gone are not an error.
func (h *Handle) Kill(ctx context.Context) error {
	if !h.killed.CompareAndSwap(false, true) {
		return nil
	}

	logger := ctxlog.Logger(ctx).With("pid", h.pid, "command", h.command)

	// Enumerate first, the group kill orphans anything that left the group.
	children := descendants(ctx, h.pid)

	var err error

	if e := signalGroup(h.pid); e != nil && !isGone(e) {
		err = multierror.Append(err, e)
	}

	for _, c := range children {
		if e := c.KillWithContext(ctx); e != nil && !isGone(e) {
			err = multierror.Append(err, e)
		}
	}

	if err != nil {
		logger.Error("process kill error", "error", err)
		return errors.Join(ErrCouldNotKillProcess, err)
	}

	logger.Info("process group killed", "descendants", len(children))

	return nil
}

// Killed reports whether Kill has been called.
func (h *Handle) Killed() bool {
	return h.killed.Load()
}

func (h *Handle) wait(ctx context.Context, rOut, rErr io.ReadCloser) {
	var wg sync.WaitGroup

	wg.Add(2) //nolint:mnd

	go func() {
		defer wg.Done()

		_, _ = io.Copy(io.Discard, h.stdout)
	}()

	go func() {
		defer wg.Done()

		_, _ = io.Copy(h.errBuf, rErr)
	}()

	state, waitErr := h.ps.Wait()

	wg.Wait()

	_ = rOut.Close()
	_ = rErr.Close()

	res := &Result{
		Command:   h.command,
		Pid:       h.pid,
		Stdout:    textdecode.Normalize(h.outBuf.Bytes()),
		Stderr:    textdecode.Normalize(h.errBuf.Bytes()),
		ExitCode:  -1,
		Err:       waitErr,
		Killed:    h.killed.Load(),
		Truncated: h.outBuf.truncated || h.errBuf.truncated,
		Started:   h.started,
		Finished:  time.Now(),
	}

	if state != nil {
		res.ExitCode = state.ExitCode()
	}

	ctxlog.Debug(ctx, "process finished", "pid", h.pid, "exitCode", res.ExitCode, "killed", res.Killed)

	h.result = res
	close(h.done)
}

// watch kills the process group when ctx ends before the process does.
func (h *Handle) watch(ctx context.Context) {
	select {
	case <-ctx.Done():
		ctxlog.Info(ctx, "context done, killing process", "pid", h.pid)
		_ = h.Kill(context.WithoutCancel(ctx))
	case <-h.done:
	}
}
