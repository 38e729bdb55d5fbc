// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Placeholder is the field substituted with the target in a command template.
const Placeholder = "target"

// ErrMalformedTemplate is returned when a command template cannot be rendered.
var ErrMalformedTemplate = errors.New("malformed command template")

// TemplateError describes why a command template is malformed.
type TemplateError struct {
	Name    string // Template name
	Command string // The offending command pattern
	Offset  int    // Byte offset of the problem in Command, -1 if not positional
	Reason  string
}

// Error implements the error interface for TemplateError.
func (e *TemplateError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s %q: %s", ErrMalformedTemplate, e.Name, e.Reason)
	}

	return fmt.Sprintf("%s %q: %s at offset %d", ErrMalformedTemplate, e.Name, e.Reason, e.Offset)
}

// Unwrap allows errors.Is(err, ErrMalformedTemplate).
func (e *TemplateError) Unwrap() error {
	return ErrMalformedTemplate
}

// Template is a named shell command with a {target} placeholder.
type Template struct {
	Name    string `yaml:"name" json:"name"`
	Command string `yaml:"command" json:"command"`
}

// Check validates the placeholder syntax of the template.
func (t Template) Check() error {
	_, err := t.Render("")
	return err
}

// Render substitutes target into the command pattern.
//
// The syntax follows format strings: {target} is replaced, {{ and }} produce literal braces.
// Any other field, an unmatched brace or a pattern without {target} is malformed.
func (t Template) Render(target string) (string, error) {
	var (
		sb    strings.Builder
		found bool
		p     = t.Command
	)

	sb.Grow(len(p) + len(target))

	for i := 0; i < len(p); i++ {
		switch c := p[i]; c {
		case '{':
			if i+1 < len(p) && p[i+1] == '{' {
				sb.WriteByte('{')
				i++

				continue
			}

			end := strings.IndexByte(p[i+1:], '}')
			if end < 0 {
				return "", t.errorAt(i, "unmatched '{'")
			}

			field := p[i+1 : i+1+end]
			if field != Placeholder {
				return "", t.errorAt(i, fmt.Sprintf("unknown field {%s}", field))
			}

			sb.WriteString(target)

			found = true
			i += end + 1
		case '}':
			if i+1 < len(p) && p[i+1] == '}' {
				sb.WriteByte('}')
				i++

				continue
			}

			return "", t.errorAt(i, "single '}' encountered")
		default:
			sb.WriteByte(c)
		}
	}

	if !found {
		return "", &TemplateError{Name: t.Name, Command: t.Command, Offset: -1, Reason: "no {target} placeholder"}
	}

	return sb.String(), nil
}

func (t Template) errorAt(offset int, reason string) error {
	return &TemplateError{Name: t.Name, Command: t.Command, Offset: offset, Reason: reason}
}
