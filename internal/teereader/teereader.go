// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

// maxPartial bounds the unterminated line kept in memory.
const maxPartial = 4096

// LastLineTeeReader copies everything it reads to a writer, like io.TeeReader,
// and remembers the last complete line for live progress display.
// Both "\n" and "\r" end a line so carriage return progress meters update it.
// It is safe to read the last line concurrently with Read.
type LastLineTeeReader struct {
	reader   io.Reader
	writer   io.Writer
	lastLine string
	partial  strings.Builder
	mu       sync.RWMutex
}

// NewLastLineTeeReader returns a reader that writes to w everything it reads from r.
// A nil w discards the data.
func NewLastLineTeeReader(r io.Reader, w io.Writer) *LastLineTeeReader {
	if w == nil {
		w = io.Discard
	}

	return &LastLineTeeReader{
		reader: r,
		writer: w,
	}
}

// Read implements io.Reader. Write errors from the tee writer are returned like io.TeeReader does.
func (lt *LastLineTeeReader) Read(p []byte) (int, error) {
	n, err := lt.reader.Read(p)
	if n > 0 {
		lt.track(p[:n])

		if wn, werr := lt.writer.Write(p[:n]); werr != nil {
			return wn, werr //nolint:wrapcheck
		}
	}

	return n, err //nolint:wrapcheck
}

func (lt *LastLineTeeReader) track(data []byte) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	for len(data) > 0 {
		i := strings.IndexAny(string(data), "\r\n")
		if i < 0 {
			lt.appendPartial(data)
			return
		}

		lt.appendPartial(data[:i])

		if line := lt.partial.String(); line != "" {
			lt.lastLine = line
		}

		lt.partial.Reset()

		data = data[i+1:]
	}
}

func (lt *LastLineTeeReader) appendPartial(b []byte) {
	if room := maxPartial - lt.partial.Len(); room > 0 {
		if len(b) > room {
			b = b[:room]
		}

		lt.partial.Write(b)
	}
}

// LastLine returns the last complete, non-empty line read so far.
// If maxRunes > 0 a longer line is cut and suffixed with "...".
func (lt *LastLineTeeReader) LastLine(maxRunes int) string {
	lt.mu.RLock()
	line := lt.lastLine
	lt.mu.RUnlock()

	line = strings.ToValidUTF8(line, "")

	if maxRunes <= 0 || utf8.RuneCountInString(line) <= maxRunes {
		return line
	}

	const ellipsis = "..."

	if maxRunes <= len(ellipsis) {
		return string([]rune(line)[:maxRunes])
	}

	return string([]rune(line)[:maxRunes-len(ellipsis)]) + ellipsis
}

// Partial returns the data after the last line ending.
func (lt *LastLineTeeReader) Partial() string {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	return lt.partial.String()
}
