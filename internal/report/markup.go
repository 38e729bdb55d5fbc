// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"io"
	"sync"

	"github.com/20142995/command-runner/internal/progress"
)

// ErrWriteMarkup is returned when the markup transcript could not be written.
var ErrWriteMarkup = errors.New("could not write markup")

// MarkupWriter is a progress.Listener that writes the markup of every output event,
// one block per line, in the order the tasks finished.
type MarkupWriter struct {
	w   io.Writer
	mu  sync.Mutex
	err error
}

var _ progress.Listener = (*MarkupWriter)(nil)

// NewMarkupWriter creates a MarkupWriter.
func NewMarkupWriter(w io.Writer) *MarkupWriter {
	return &MarkupWriter{w: w}
}

// OnEvent implements progress.Listener. Writing stops at the first error.
func (mw *MarkupWriter) OnEvent(event progress.Event) {
	if event.Type != progress.EventOutput {
		return
	}

	mw.mu.Lock()
	defer mw.mu.Unlock()

	if mw.err != nil {
		return
	}

	if _, err := io.WriteString(mw.w, event.Data.Markup+"\n"); err != nil {
		mw.err = errors.Join(ErrWriteMarkup, err)
	}
}

// Err returns the first write error.
func (mw *MarkupWriter) Err() error {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	return mw.err
}
