// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"

	"github.com/20142995/command-runner/internal/process"
)

// Event is an update from a running job.
type Event struct {
	JobID     string    // Job that emitted the event
	Type      EventType // Event type indicating what happened
	Timestamp time.Time // When the event occurred
	Data      EventData // Type-specific data
}

// EventType represents the type of job event.
type EventType int

const (
	// EventStarted indicates a task's process has been spawned.
	EventStarted EventType = iota
	// EventOutput carries the output of a finished task, successful or not.
	EventOutput
	// EventProgress carries the percentage of finished tasks.
	EventProgress
	// EventCompleted is sent once when every task finished and the job was not stopped.
	EventCompleted
	// EventStopped is sent once when a stopped job has wound down.
	EventStopped
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventStarted:
		return "started"
	case EventOutput:
		return "output"
	case EventProgress:
		return "progress"
	case EventCompleted:
		return "completed"
	case EventStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// EventData contains type-specific information for job events.
type EventData struct {
	// For EventStarted and EventOutput
	Task    string // Task label, "Name(target)"
	Command string // Substituted command line
	Pid     int

	// For EventOutput
	Text   string          // Plain output text
	Markup string          // Text translated to span markup
	Result *process.Result // Never nil for EventOutput

	// For EventProgress, EventCompleted and EventStopped
	Percent   int
	Completed int
	Total     int
}

// Reporter is the interface for sending job events.
type Reporter interface {
	// Report sends an event. Implementations may block until the event is accepted.
	Report(event Event)
	// Close signals that no more events will be sent and cleans up resources.
	Close()
}

// Listener receives job events.
// The TUI, the plain printer and the markup writer implement this interface.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(event Event)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Listeners fans one event out to several listeners, in order.
func Listeners(ls ...Listener) Listener {
	return ListenerFunc(func(event Event) {
		for _, l := range ls {
			l.OnEvent(event)
		}
	})
}

// NullReporter is a no-op implementation of Reporter.
type NullReporter struct{}

// Report implements Reporter.Report by doing nothing.
func (nr *NullReporter) Report(_ Event) {}

// Close implements Reporter.Close by doing nothing.
func (nr *NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return &NullReporter{}
}
