// Package monitor provides live observation of test runs: an
// in-process event collector with aggregate statistics and a
// WebSocket server broadcasting events to connected clients.
package monitor

import "time"

// EventType represents the type of run event.
type EventType string

const (
	// EventStarted is emitted when a unit begins running.
	EventStarted EventType = "started"
	// EventPassed is emitted when a unit run passes.
	EventPassed EventType = "passed"
	// EventFailed is emitted when a unit run has failures or
	// faults.
	EventFailed EventType = "failed"
)

// Event represents one lifecycle event during a run.
type Event struct {
	Type      EventType `json:"type"`
	Unit      string    `json:"unit"`
	Namespace string    `json:"namespace,omitempty"`
	Failures  int       `json:"failures,omitempty"`
	Faults    int       `json:"faults,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
