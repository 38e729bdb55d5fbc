// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"runtime"
	"strconv"
	"strings"
)

// ParseWorkers converts user input to a worker count. Anything that is not a positive integer is 1.
func ParseWorkers(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}

	return n
}

// DefaultWorkers is the worker count used when none is given.
func DefaultWorkers() int {
	return runtime.NumCPU()
}
