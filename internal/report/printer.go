// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/20142995/command-runner/internal/color"
	"github.com/20142995/command-runner/internal/progress"
)

// Printer is a progress.Listener that prints task output as it arrives.
// Progress lines go to a separate writer so output can be piped on its own.
type Printer struct {
	out    io.Writer
	status io.Writer
	mu     sync.Mutex
}

var _ progress.Listener = (*Printer)(nil)

// NewPrinter creates a Printer. A nil status writer drops progress lines.
func NewPrinter(out, status io.Writer) *Printer {
	if status == nil {
		status = io.Discard
	}

	return &Printer{out: out, status: status}
}

// OnEvent implements progress.Listener.
func (p *Printer) OnEvent(event progress.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch event.Type {
	case progress.EventOutput:
		fmt.Fprintln(p.out, event.Data.Text) // nolint:errcheck
	case progress.EventProgress:
		fmt.Fprintf(p.status, "%s %d/%d\n", //nolint:errcheck
			color.Colorize(fmt.Sprintf("[%3d%%]", event.Data.Percent), color.FgCyan),
			event.Data.Completed, event.Data.Total)
	case progress.EventCompleted:
		fmt.Fprintln(p.status, color.Colorize("job completed", color.FgGreen)) // nolint:errcheck
	case progress.EventStopped:
		fmt.Fprintf(p.status, "%s %d/%d\n", //nolint:errcheck
			color.Colorize("job stopped", color.FgYellow), event.Data.Completed, event.Data.Total)
	}
}
