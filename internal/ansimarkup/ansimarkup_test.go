// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ansimarkup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: "</span>"},
		{name: "plain text", in: "hello", want: "hello</span>"},
		{name: "newlines", in: "a\nb\n", want: "a<br>b<br></span>"},
		{name: "foreground", in: "\033[31mred\033[0m", want: `<span style="color:red;">red</span>`},
		{name: "gray", in: "\033[90mdim\033[0m", want: `<span style="color:gray;">dim</span>`},
		{
			name: "background",
			in:   "\033[44mbg\033[0m!",
			want: `<span style="background-color:blue;">bg</span>!</span>`,
		},
		{
			name: "24-bit foreground and background",
			in:   "\033[38;2;255;128;0;48;2;1;2;3mx\033[0m",
			want: `<span style="color:rgb(255,128,0);"><span style="background-color:rgb(1,2,3);">x</span></span>`,
		},
		{
			name: "unterminated colour is closed",
			in:   "\033[32mok",
			want: `<span style="color:green;">ok</span>`,
		},
		{
			name: "two open spans closed",
			in:   "\033[1;33;41mwarn",
			want: `<span style="color:yellow;"><span style="background-color:red;">warn</span></span>`,
		},
		{name: "unknown codes ignored", in: "\033[1;4;95mx", want: "x</span>"},
		{name: "bare reset", in: "\033[mx", want: "</span>x</span>"},
		{name: "truncated 24-bit", in: "\033[38;2;1;2mx", want: "x</span>"},
		{name: "256 colour skipped", in: "\033[38;5;200mx", want: "x</span>"},
		{name: "non sgr escape kept", in: "a\033[2Kb", want: "a\033[2Kb</span>"},
		{name: "lone escape kept", in: "a\033[", want: "a\033[</span>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, Balanced(got))
		})
	}
}

func TestTranslate_PlainTextProperty(t *testing.T) {
	inputs := []string{
		"PING example.com (93.184.216.34): 56 data bytes",
		"多行\n输出\n",
		"  spaces  \n\n",
		"tab\tseparated",
	}

	for _, in := range inputs {
		assert.Equal(t, strings.ReplaceAll(in, "\n", "<br>")+"</span>", Translate(in))
	}
}

func TestBalanced(t *testing.T) {
	tests := []struct {
		markup string
		want   bool
	}{
		{markup: "", want: true},
		{markup: "text</span>", want: true},
		{markup: `<span style="color:red;">x`, want: false},
		{markup: `<span style="color:red;">x</span>`, want: true},
		{markup: `<span style="color:red;"><span style="color:blue;">x</span>`, want: false},
		{markup: `</span></span><span style="color:red;">x</span>`, want: true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Balanced(tt.markup), tt.markup)
	}
}
