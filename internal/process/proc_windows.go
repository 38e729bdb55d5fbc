// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package process

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/windows"
)

func shell() string {
	if comspec := os.Getenv("ComSpec"); comspec != "" {
		return comspec
	}

	return filepath.Join(os.Getenv("SystemRoot"), "System32", "cmd.exe")
}

func shellCommand(commandLine string) (string, []string, *syscall.SysProcAttr) {
	sh := shell()
	attr := groupAttr()
	// cmd.exe does its own parsing, hand it the line verbatim.
	attr.CmdLine = sh + ` /c "` + commandLine + `"`

	return sh, []string{sh, "/c", commandLine}, attr
}

func groupAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: windows.CREATE_NEW_PROCESS_GROUP}
}

// signalGroup sends CTRL_BREAK_EVENT to the process group.
func signalGroup(pgid int) error {
	return windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, uint32(pgid)) //nolint:gosec
}

func isGoneOS(err error) bool {
	return errors.Is(err, windows.ERROR_INVALID_PARAMETER) || errors.Is(err, windows.ERROR_INVALID_HANDLE)
}
