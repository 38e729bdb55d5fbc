// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package textdecode

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
)

// Method records which step of the fallback chain produced the text.
type Method int

const (
	// MethodUTF8 means the bytes were already valid UTF-8.
	MethodUTF8 Method = iota
	// MethodDetected means the bytes were decoded from a detected charset.
	MethodDetected
	// MethodLossy means invalid sequences were replaced.
	MethodLossy
	// MethodRaw means the bytes were rendered as a quoted Go string.
	MethodRaw
)

// minConfidence is the chardet confidence, out of 100, needed to trust a detected charset.
const minConfidence = 30

func (m Method) String() string {
	switch m {
	case MethodUTF8:
		return "utf-8"
	case MethodDetected:
		return "detected"
	case MethodLossy:
		return "lossy"
	case MethodRaw:
		return "raw"
	}

	return "unknown"
}

// Normalize decodes process output and normalizes it for display:
// CRLF becomes LF and trailing whitespace is removed.
func Normalize(b []byte) string {
	s, _ := Decode(b)
	return Clean(s)
}

// Clean converts CRLF line endings to LF and trims trailing whitespace.
func Clean(s string) string {
	return strings.TrimRightFunc(strings.ReplaceAll(s, "\r\n", "\n"), isSpace)
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return r == 0x85 || r == 0xA0 || (r >= 0x2000 && r <= 0x200a) || r == 0x3000
}

// Decode converts b to a UTF-8 string. It never fails: the chain is
// valid UTF-8, detected charset, UTF-8 with replacement, quoted raw bytes.
func Decode(b []byte) (s string, m Method) {
	if utf8.Valid(b) {
		return string(b), MethodUTF8
	}

	defer func() {
		if recover() != nil {
			s, m = strconv.Quote(string(b)), MethodRaw
		}
	}()

	if s, ok := decodeDetected(b); ok {
		return s, MethodDetected
	}

	return strings.ToValidUTF8(string(b), string(utf8.RuneError)), MethodLossy
}

func decodeDetected(b []byte) (string, bool) {
	res, err := chardet.NewTextDetector().DetectBest(b)
	if err != nil || res == nil || res.Confidence < minConfidence {
		return "", false
	}

	enc, err := htmlindex.Get(res.Charset)
	if err != nil {
		return "", false
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil || !utf8.Valid(out) {
		return "", false
	}

	return string(out), true
}
