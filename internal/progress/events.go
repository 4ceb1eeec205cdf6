// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event represents a real-time update about one node of the graph.
type Event struct {
	Node      string    // Name of the node the event is about
	Type      EventType // Event type indicating what happened
	Message   string    // Human-readable status message
	Timestamp time.Time // When the event occurred
	Data      EventData // Type-specific data
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventWaiting indicates a node is waiting for its dependencies.
	EventWaiting EventType = iota
	// EventStarted indicates a node's payload has begun execution.
	EventStarted
	// EventOutput indicates a new line of output is available.
	EventOutput
	// EventCompleted indicates successful completion.
	EventCompleted
	// EventFailed indicates the payload failed.
	EventFailed
	// EventSkipped indicates the payload never ran because a dependency failed.
	EventSkipped
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventWaiting:
		return "waiting"
	case EventStarted:
		return "started"
	case EventOutput:
		return "output"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	case EventSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// EventData contains type-specific information for progress events.
type EventData struct {
	// For EventOutput
	OutputLine string // The actual output line
	IsStderr   bool   // True if this is stderr output

	// For EventCompleted, EventFailed and EventSkipped
	Duration time.Duration // How long the payload ran
	Error    error         // Error if the node failed
}

// Reporter receives progress events. Implementations must be safe for concurrent use.
type Reporter interface {
	// Report sends a progress event. It must not block for long.
	Report(event Event)
	// Close signals that no more events will be reported.
	Close()
}

// Listener handles progress events delivered by a ChannelReporter.
type Listener interface {
	OnEvent(event Event)
}

// NullReporter discards every event.
type NullReporter struct{}

// Report implements Reporter.
func (nr *NullReporter) Report(Event) {}

// Close implements Reporter.
func (nr *NullReporter) Close() {}

// NewNullReporter creates a Reporter that discards all events.
func NewNullReporter() Reporter {
	return &NullReporter{}
}

// ReporterFunc adapts a function to the Reporter interface. Close is a no-op.
type ReporterFunc func(event Event)

// Report implements Reporter.
func (f ReporterFunc) Report(event Event) {
	f(event)
}

// Close implements Reporter.
func (f ReporterFunc) Close() {}
