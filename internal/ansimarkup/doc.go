// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ansimarkup translates terminal colour escape sequences into HTML-like span markup
// for presentation layers that cannot render ANSI.
package ansimarkup
