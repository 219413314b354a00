package jobs

import (
	"sync"
	"time"

	"speech-transcriber/internal/domain"
)

// EventType classifies lifecycle messages emitted while jobs execute.
type EventType string

const (
	EventTypeAccepted  EventType = "accepted"
	EventTypeCompleted EventType = "completed"
	EventTypeFailed    EventType = "failed"
)

// Event is one sequenced lifecycle message for a job.
type Event struct {
	Seq            int64            `json:"seq"`
	Timestamp      time.Time        `json:"timestamp"`
	JobID          string           `json:"job_id"`
	Type           EventType        `json:"type"`
	Status         domain.JobStatus `json:"status,omitempty"`
	Message        string           `json:"message,omitempty"`
	OutputFilename string           `json:"output_filename,omitempty"`
}

// EventLog stores recent lifecycle events and provides incremental reads.
// The buffer is bounded; the oldest events drop once the cap is reached.
type EventLog struct {
	mu        sync.RWMutex
	nextSeq   int64
	maxEvents int
	events    []Event
}

// NewEventLog creates a bounded in-memory event buffer.
func NewEventLog(maxEvents int) *EventLog {
	if maxEvents <= 0 {
		maxEvents = 500
	}

	return &EventLog{
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
	}
}

// Publish appends one event, assigning its sequence number and timestamp.
func (l *EventLog) Publish(event Event) Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextSeq++
	event.Seq = l.nextSeq
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	l.events = append(l.events, event)
	if len(l.events) > l.maxEvents {
		trim := len(l.events) - l.maxEvents
		l.events = append([]Event(nil), l.events[trim:]...)
	}

	return event
}

// Since returns events with sequence strictly greater than seq.
func (l *EventLog) Since(seq int64) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.events) == 0 {
		return nil
	}

	out := make([]Event, 0, len(l.events))
	for _, event := range l.events {
		if event.Seq > seq {
			out = append(out, event)
		}
	}
	return out
}
