// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package task expands targets and command templates into the tasks of a job.
package task
