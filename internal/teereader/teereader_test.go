// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastLineTeeReader_Lines(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedLast    string
		expectedPartial string
	}{
		{name: "single line with newline", input: "hello world\n", expectedLast: "hello world"},
		{name: "single line without newline", input: "hello world", expectedPartial: "hello world"},
		{name: "empty string"},
		{name: "just newline", input: "\n"},
		{name: "multiple lines", input: "one\ntwo\nthree\n", expectedLast: "three"},
		{name: "partial after lines", input: "one\ntwo\nthr", expectedLast: "two", expectedPartial: "thr"},
		{name: "blank lines keep previous", input: "one\n\n\n", expectedLast: "one"},
		{name: "crlf", input: "one\r\ntwo\r\n", expectedLast: "two"},
		{name: "carriage return progress", input: " 10%\r 50%\r100%\r", expectedLast: "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured bytes.Buffer

			tr := NewLastLineTeeReader(strings.NewReader(tt.input), &captured)

			data, err := io.ReadAll(tr)
			require.NoError(t, err)

			assert.Equal(t, tt.input, string(data))
			assert.Equal(t, tt.input, captured.String())
			assert.Equal(t, tt.expectedLast, tr.LastLine(0))
			assert.Equal(t, tt.expectedPartial, tr.Partial())
		})
	}
}

func TestLastLineTeeReader_ProgressiveReading(t *testing.T) {
	tr := NewLastLineTeeReader(strings.NewReader("line1\nline2\nline3\n"), nil)

	buffer := make([]byte, 7) // "line1\nl"
	n, err := tr.Read(buffer)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, "line1", tr.LastLine(0))
	assert.Equal(t, "l", tr.Partial())

	buffer = make([]byte, 6) // "ine2\nl"
	_, err = tr.Read(buffer)
	require.NoError(t, err)
	assert.Equal(t, "line2", tr.LastLine(0))
	assert.Equal(t, "l", tr.Partial())

	buffer = make([]byte, 6)
	n, err = tr.Read(buffer)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "line3", tr.LastLine(0))
	assert.Empty(t, tr.Partial())
}

func TestLastLineTeeReader_Truncate(t *testing.T) {
	tr := NewLastLineTeeReader(strings.NewReader("来自 93.184.216.34 的回复\n"), nil)
	_, err := io.ReadAll(tr)
	require.NoError(t, err)

	assert.Equal(t, "来自 9...", tr.LastLine(7))
	assert.Equal(t, "来自", tr.LastLine(2))
	assert.Equal(t, "来自 93.184.216.34 的回复", tr.LastLine(100))
}

func TestLastLineTeeReader_PartialIsBounded(t *testing.T) {
	tr := NewLastLineTeeReader(strings.NewReader(strings.Repeat("x", 3*maxPartial)), nil)
	_, err := io.ReadAll(tr)
	require.NoError(t, err)

	assert.Len(t, tr.Partial(), maxPartial)
}

func TestLastLineTeeReader_ConcurrentAccess(t *testing.T) {
	input := strings.Repeat("line\n", 1000)
	tr := NewLastLineTeeReader(strings.NewReader(input), nil)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		_, err := io.ReadAll(tr)
		assert.NoError(t, err)
	}()

	for range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 100 {
				_ = tr.LastLine(10)
				_ = tr.Partial()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, "line", tr.LastLine(0))
}

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestLastLineTeeReader_Errors(t *testing.T) {
	t.Run("reader error", func(t *testing.T) {
		tr := NewLastLineTeeReader(&errorReader{data: "some data\n"}, nil)

		n, err := tr.Read(make([]byte, 100))
		assert.Equal(t, 10, n)
		require.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, "some data", tr.LastLine(0))
	})

	t.Run("writer error", func(t *testing.T) {
		tr := NewLastLineTeeReader(strings.NewReader("abc"), failingWriter{})

		_, err := tr.Read(make([]byte, 10))
		require.EqualError(t, err, "disk full")
	})
}

// errorReader returns its data together with an error.
type errorReader struct {
	data string
	read bool
}

func (e *errorReader) Read(p []byte) (int, error) {
	if e.read {
		return 0, io.EOF
	}

	e.read = true

	return copy(p, e.data), assert.AnError
}
