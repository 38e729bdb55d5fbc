// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package textdecode

import (
	"crypto/rand"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{name: "empty", in: nil, want: ""},
		{name: "crlf", in: []byte("a\r\nb\r\n"), want: "a\nb"},
		{name: "trailing whitespace", in: []byte("line  \n\t \n"), want: "line"},
		{name: "leading whitespace kept", in: []byte("  x"), want: "  x"},
		{name: "utf-8", in: []byte("正常输出\n"), want: "正常输出"},
		{name: "lone cr kept", in: []byte("50%\r100%"), want: "50%\r100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestDecode_UTF8(t *testing.T) {
	s, m := Decode([]byte("héllo"))
	assert.Equal(t, "héllo", s)
	assert.Equal(t, MethodUTF8, m)
}

func TestDecode_GB18030(t *testing.T) {
	text := "正在 Ping example.com 具有 32 字节的数据:\r\n来自 93.184.216.34 的回复: 字节=32 时间=150ms TTL=52\r\n请求超时。\r\n"

	raw, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)
	require.False(t, utf8.Valid(raw))

	s, m := Decode(raw)
	assert.True(t, utf8.ValidString(s))
	assert.NotEqual(t, MethodRaw, m)
}

func TestDecode_NeverFails(t *testing.T) {
	inputs := [][]byte{
		{0xff, 0xfe, 0xfd},
		{0xc3},
		{0x80, 'a', 0x80, 'b'},
	}

	buf := make([]byte, 4096)
	_, err := rand.Read(buf)
	require.NoError(t, err)

	inputs = append(inputs, buf)

	for _, in := range inputs {
		s, m := Decode(in)
		assert.True(t, utf8.ValidString(s), "method %s", m)
	}
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "utf-8", MethodUTF8.String())
	assert.Equal(t, "detected", MethodDetected.String())
	assert.Equal(t, "lossy", MethodLossy.String())
	assert.Equal(t, "raw", MethodRaw.String())
	assert.Equal(t, "unknown", Method(42).String())
}
