// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ansimarkup

import (
	"strings"

	"github.com/20142995/command-runner/internal/color"
)

const (
	// SpanClose closes the innermost styled span.
	SpanClose = "</span>"
	// LineBreak replaces every newline.
	LineBreak = "<br>"

	spanOpen   = "<span "
	rgbParams  = 3
	paramSplit = ";"
)

// Translate converts SGR escape sequences in text into span markup.
//
// Reset closes a span, named colours and 24-bit colours open one. Unknown parameters are dropped.
// Escape sequences that are not SGR are left untouched. Newlines become <br>.
// Every span left open is closed at the end, and the result always ends with </span>.
func Translate(text string) string {
	var (
		sb    strings.Builder
		depth int
	)

	sb.Grow(len(text) + len(SpanClose))

	for {
		i := strings.Index(text, color.Escape)
		if i < 0 {
			writeText(&sb, text)
			break
		}

		writeText(&sb, text[:i])
		rest := text[i+len(color.Escape):]

		j := strings.IndexFunc(rest, func(r rune) bool { return (r < '0' || r > '9') && r != ';' })
		if j < 0 || rest[j] != color.Terminator[0] {
			writeText(&sb, color.Escape)
			text = rest

			continue
		}

		depth = writeSGR(&sb, strings.Split(rest[:j], paramSplit), depth)
		text = rest[j+1:]
	}

	for ; depth > 0; depth-- {
		sb.WriteString(SpanClose)
	}

	out := sb.String()
	if !strings.HasSuffix(out, SpanClose) {
		out += SpanClose
	}

	return out
}

func writeText(sb *strings.Builder, s string) {
	sb.WriteString(strings.ReplaceAll(s, "\n", LineBreak))
}

// writeSGR renders one parameter list and returns the new span depth.
func writeSGR(sb *strings.Builder, params []string, depth int) int {
	for i := 0; i < len(params); i++ {
		code, ok := color.ParseCode(params[i])
		if !ok {
			continue
		}

		switch {
		case code == color.Reset:
			sb.WriteString(SpanClose)

			if depth > 0 {
				depth--
			}
		case code == color.FgExtended || code == color.BgExtended:
			if i+1+rgbParams >= len(params) || params[i+1] != "2" {
				continue
			}

			rgb := params[i+2 : i+2+rgbParams]
			if !allDigits(rgb) {
				continue
			}

			openSpan(sb, code, "rgb("+strings.Join(rgb, ",")+")")

			depth++
			i += 1 + rgbParams
		default:
			name, ok := color.Name(code)
			if !ok {
				continue
			}

			openSpan(sb, code, name)

			depth++
		}
	}

	return depth
}

func openSpan(sb *strings.Builder, code color.Code, value string) {
	prop := "color"
	if color.IsBackground(code) {
		prop = "background-color"
	}

	sb.WriteString(spanOpen + `style="` + prop + ":" + value + `;">`)
}

func allDigits(ss []string) bool {
	for _, s := range ss {
		if s == "" || strings.Trim(s, "0123456789") != "" {
			return false
		}
	}

	return true
}

// Balanced reports whether every span opened in markup is closed.
// Closing tags without an open span are ignored.
func Balanced(markup string) bool {
	depth := 0

	for len(markup) > 0 {
		o := strings.Index(markup, spanOpen)
		c := strings.Index(markup, SpanClose)

		switch {
		case o < 0 && c < 0:
			return depth == 0
		case c < 0 || (o >= 0 && o < c):
			depth++
			markup = markup[o+len(spanOpen):]
		default:
			if depth > 0 {
				depth--
			}

			markup = markup[c+len(SpanClose):]
		}
	}

	return depth == 0
}
