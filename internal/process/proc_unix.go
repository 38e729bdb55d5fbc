// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package process

import (
	"errors"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sys/unix"
)

// shellPath is the POSIX shell used for command lines.
var shellPath = "/bin/sh"

func shellCommand(commandLine string) (string, []string, *syscall.SysProcAttr) {
	return shellPath, []string{shellPath, "-c", commandLine}, groupAttr()
}

// groupAttr starts the child as leader of a new session, so its pid is also its process group id.
func groupAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

// signalGroup sends SIGTERM then SIGKILL to the process group without waiting in between.
func signalGroup(pgid int) error {
	var err error

	for _, sig := range []unix.Signal{unix.SIGTERM, unix.SIGKILL} {
		if e := unix.Kill(-pgid, sig); e != nil && !errors.Is(e, unix.ESRCH) {
			err = multierror.Append(err, e)
		}
	}

	return err
}

func isGoneOS(err error) bool {
	return errors.Is(err, unix.ESRCH)
}
