// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package textdecode turns raw process output into display text.
// Charset detection is heuristic, only the fallback chain is guaranteed.
package textdecode
