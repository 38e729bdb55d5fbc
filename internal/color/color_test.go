// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, isColorEnabled(), "Expected color output to be disabled")

	t.Setenv("FORCE_COLOR", "1")
	assert.False(t, isColorEnabled(), "Expected color output to be disabled as NO_COLOR is still set")

	t.Setenv("NO_COLOR", "")
	assert.True(t, isColorEnabled(), "Expected color output to be enabled as FORCE_COLOR is set and NO_COLOR is unset")
}

func TestName(t *testing.T) {
	tests := []struct {
		name   string
		code   Code
		want   string
		wantOk bool
	}{
		{name: "foreground red", code: FgRed, want: "red", wantOk: true},
		{name: "background cyan", code: BgCyan, want: "cyan", wantOk: true},
		{name: "gray", code: FgHiBlack, want: "gray", wantOk: true},
		{name: "bold has no name", code: Bold, wantOk: false},
		{name: "hi red has no name", code: FgHiRed, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Name(tt.code)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsBackground(t *testing.T) {
	assert.True(t, IsBackground(BgBlack))
	assert.True(t, IsBackground(BgWhite))
	assert.True(t, IsBackground(BgExtended))
	assert.False(t, IsBackground(FgWhite))
	assert.False(t, IsBackground(FgHiBlack))
}

func TestParseCode(t *testing.T) {
	c, ok := ParseCode("31")
	assert.True(t, ok)
	assert.Equal(t, FgRed, c)

	c, ok = ParseCode("")
	assert.True(t, ok)
	assert.Equal(t, Reset, c)

	_, ok = ParseCode("x")
	assert.False(t, ok)
}

func TestControlString(t *testing.T) {
	assert.Equal(t, "\033[1;31m", ControlString(Bold, FgRed))
	assert.Equal(t, "\033[0m", ControlString(Reset))
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "hello world", Strip("\033[31mhello\033[0m world"))
	assert.Equal(t, "plain", Strip("plain"))
	assert.Equal(t, "a\033[?25lb", Strip("a\033[?25lb"))
}
