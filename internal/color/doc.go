// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color knows about ANSI SGR codes. It colorizes strings for the console,
// strips escape sequences and maps the standard colour codes to their names so that
// other packages can translate terminal output into markup.
//
// Color output is disabled when NO_COLOR is set, forced when FORCE_COLOR is set,
// and otherwise enabled only when stdout is a terminal (golang.org/x/term).
package color
