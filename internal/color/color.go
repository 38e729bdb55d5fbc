// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	sbPadding = 16 // padding for the strings.Builder
)

// Code represents an ANSI SGR parameter.
type Code int

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"
	// Escape is the control sequence introducer used by SGR sequences.
	Escape = "\033["
	// Terminator ends an SGR sequence.
	Terminator = "m"
	reset      = Escape + "0" + Terminator
)

// Control codes for text formatting.
const (
	Reset Code = iota
	Bold
	Faint
	Italic
	Underline
)

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
	// FgExtended introduces a 256 or 24-bit foreground colour (38;2;r;g;b).
	FgExtended
)

// Foreground Hi-Intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

// Background text colors.
const (
	BgBlack Code = iota + 40
	BgRed
	BgGreen
	BgYellow
	BgBlue
	BgMagenta
	BgCyan
	BgWhite
	// BgExtended introduces a 256 or 24-bit background colour (48;2;r;g;b).
	BgExtended
)

// TrueColor is the sub-parameter selecting 24-bit colour after FgExtended/BgExtended.
const TrueColor Code = 2

// names maps the codes with a well known colour name.
// Only FgHiBlack of the hi-intensity range has a name, it is commonly used for gray.
var names = map[Code]string{
	FgBlack:   "black",
	FgRed:     "red",
	FgGreen:   "green",
	FgYellow:  "yellow",
	FgBlue:    "blue",
	FgMagenta: "magenta",
	FgCyan:    "cyan",
	FgWhite:   "white",
	FgHiBlack: "gray",
	BgBlack:   "black",
	BgRed:     "red",
	BgGreen:   "green",
	BgYellow:  "yellow",
	BgBlue:    "blue",
	BgMagenta: "magenta",
	BgCyan:    "cyan",
	BgWhite:   "white",
}

// Name returns the colour name of a foreground or background code.
func Name(c Code) (string, bool) {
	n, ok := names[c]
	return n, ok
}

// IsBackground reports whether the code selects a background colour.
func IsBackground(c Code) bool {
	return (c >= BgBlack && c <= BgWhite) || c == BgExtended
}

// ParseCode parses a single SGR parameter. Empty parameters are treated as Reset.
func ParseCode(s string) (Code, bool) {
	if s == "" {
		return Reset, true
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}

	return Code(n), true
}

// ControlString generates a string with ANSI control codes for text formatting.
func ControlString(c ...Code) string {
	sb := strings.Builder{}
	sb.Grow(len(Escape) + len(Terminator) + sbPadding)
	sb.WriteString(Escape)
	writeCodes(&sb, c)
	sb.WriteString(Terminator)

	return sb.String()
}

func writeCodes(sb *strings.Builder, codes []Code) {
	for i, code := range codes {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString(strconv.Itoa(int(code)))
	}
}

var enabled bool

func init() {
	enabled = isColorEnabled()
}

// Colorize returns a string with ANSI color codes applied.
// It appends the reset code at the end of the string to reset the color.
func Colorize(str string, colorCodes ...Code) string {
	if !enabled {
		return str
	}

	sb := strings.Builder{}
	sb.Grow(len(str) + len(Escape) + len(Terminator) + len(reset) + sbPadding)
	sb.WriteString(Escape)
	writeCodes(&sb, colorCodes)
	sb.WriteString(Terminator)
	sb.WriteString(str)
	sb.WriteString(reset)

	return sb.String()
}

// Strip removes SGR sequences from str.
func Strip(str string) string {
	var sb strings.Builder

	sb.Grow(len(str))

	for {
		i := strings.Index(str, Escape)
		if i < 0 {
			sb.WriteString(str)
			break
		}

		sb.WriteString(str[:i])
		rest := str[i+len(Escape):]

		j := strings.IndexFunc(rest, func(r rune) bool { return (r < '0' || r > '9') && r != ';' })
		if j < 0 || rest[j] != Terminator[0] {
			// Not an SGR sequence, keep the escape as is.
			sb.WriteString(Escape)
			str = rest

			continue
		}

		str = rest[j+1:]
	}

	return sb.String()
}

// Enabled is a function that indicates whether color output is enabled.
// It is initialized in package init().
//
// It is set to true if either the NO_COLOR environment variable is not set,
// and the FORCE_COLOR environment variable is set, or if the output is a terminal.
// Terminal detection is done using the golang.org/x/term package.
func Enabled() bool {
	return enabled
}

func isColorEnabled() bool {
	if nc := os.Getenv(NoColor); nc != "" {
		return false
	}

	if fc := os.Getenv(ForceColor); fc != "" {
		return true
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}
