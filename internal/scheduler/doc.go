// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scheduler runs the tasks of a job on a bounded pool of workers.
//
// One coordination goroutine per job submits tasks to the pool, each worker blocks on
// its task's process. Every finished task produces an output event followed by a progress
// event. A job that is not stopped ends with exactly one completed event.
// Stop flips the job to stopping, abandons tasks that have not started and kills
// the process groups that are running. Progress and completion are not reported after Stop.
package scheduler
