// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teereader provides a tee reader that remembers the last line of output.
// It lets a presentation layer show what a long running command is doing
// while the full output is captured elsewhere.
package teereader
