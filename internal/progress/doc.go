// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress carries job events from the scheduler to whoever presents them.
// The scheduler reports typed events, presentation layers consume them through
// a channel or a Listener.
package progress
