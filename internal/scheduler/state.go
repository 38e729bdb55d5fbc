// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

// State is the lifecycle state of a job.
//
//	Running -> Completed
//	Running -> Stopping -> Stopped
type State int

const (
	// StateRunning is a job that is still submitting or waiting for tasks.
	StateRunning State = iota
	// StateStopping is a job that was stopped and is winding down.
	StateStopping
	// StateStopped is a stopped job whose workers have all returned.
	StateStopped
	// StateCompleted is a job whose tasks all finished without Stop.
	StateCompleted
)

// String implements the Stringer interface for State.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Final reports whether the state can no longer change.
func (s State) Final() bool {
	return s == StateStopped || s == StateCompleted
}
