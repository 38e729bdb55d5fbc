// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package process spawns command lines in their own process group, captures their output
// and tears down the whole group on request.
//
// On POSIX the child leads a new session and is killed with SIGTERM immediately followed
// by SIGKILL to the group. On Windows it is started with CREATE_NEW_PROCESS_GROUP and
// receives CTRL_BREAK_EVENT. In both cases descendants found before signalling are killed too.
package process
