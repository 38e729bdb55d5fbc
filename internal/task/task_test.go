// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package task

import (
	"testing"

	"github.com/20142995/command-runner/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ping = catalog.Template{Name: "Ping", Command: "ping -c 4 {target}"}
	dig  = catalog.Template{Name: "Dig", Command: "dig {target}"}
)

func TestExpand_TargetMajor(t *testing.T) {
	tasks, err := Expand([]string{"a.com", "b.com"}, []catalog.Template{ping, dig})
	require.NoError(t, err)

	got := make([]string, 0, len(tasks))
	for _, tk := range tasks {
		got = append(got, tk.Command)
	}

	assert.Equal(t, []string{
		"ping -c 4 a.com",
		"dig a.com",
		"ping -c 4 b.com",
		"dig b.com",
	}, got)
	assert.Equal(t, "b.com", tasks[3].Target)
	assert.Equal(t, dig, tasks[3].Template)
	assert.Equal(t, "Dig(b.com)", tasks[3].String())
}

func TestExpand_Errors(t *testing.T) {
	tests := []struct {
		name      string
		targets   []string
		templates []catalog.Template
		is        []error
	}{
		{name: "no targets", templates: []catalog.Template{ping}, is: []error{ErrConfiguration, ErrNoTargets}},
		{name: "no templates", targets: []string{"a"}, is: []error{ErrConfiguration, ErrNoCommands}},
		{
			name:      "malformed template",
			targets:   []string{"a"},
			templates: []catalog.Template{ping, {Name: "Bad", Command: "echo {host}"}},
			is:        []error{ErrConfiguration, catalog.ErrMalformedTemplate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := Expand(tt.targets, tt.templates)
			assert.Nil(t, tasks)

			for _, is := range tt.is {
				require.ErrorIs(t, err, is)
			}
		})
	}
}

func TestParseTargets(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "blank lines dropped", text: "\n a.com \n\n\tb.com\n   \n", want: []string{"a.com", "b.com"}},
		{name: "crlf", text: "a.com\r\nb.com\r\n", want: []string{"a.com", "b.com"}},
		{name: "duplicates kept", text: "a\na", want: []string{"a", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTargets(tt.text))
		})
	}
}
