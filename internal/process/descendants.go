// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"context"
	"errors"
	"os"
	"syscall"

	"github.com/20142995/command-runner/internal/ctxlog"
	gopsprocess "github.com/shirou/gopsutil/v4/process"
)

// descendants walks the process tree below pid. Errors end the walk of that branch.
func descendants(ctx context.Context, pid int) []*gopsprocess.Process {
	root, err := gopsprocess.NewProcessWithContext(ctx, int32(pid)) //nolint:gosec
	if err != nil {
		return nil
	}

	var (
		res   []*gopsprocess.Process
		queue = []*gopsprocess.Process{root}
		seen  = map[int32]struct{}{root.Pid: {}}
	)

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		children, err := p.ChildrenWithContext(ctx)
		if err != nil {
			if !errors.Is(err, gopsprocess.ErrorNoChildren) {
				ctxlog.Debug(ctx, "could not list child processes", "pid", p.Pid, "error", err)
			}

			continue
		}

		for _, c := range children {
			if _, ok := seen[c.Pid]; ok {
				continue
			}

			seen[c.Pid] = struct{}{}
			res = append(res, c)
			queue = append(queue, c)
		}
	}

	return res
}

// isGone reports whether err means the target process no longer exists.
func isGone(err error) bool {
	return errors.Is(err, os.ErrProcessDone) ||
		errors.Is(err, syscall.ESRCH) ||
		errors.Is(err, gopsprocess.ErrorProcessNotRunning) ||
		isGoneOS(err)
}
