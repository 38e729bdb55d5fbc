// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report writes job events and results for non-interactive use:
// task output as it arrives, a markup transcript and a colourised summary.
package report
