package order

import (
	"time"

	"dispatch/internal/pkg/errs"
)

// TrackingNote is an immutable audit entry in an order's delivery history.
// Notes are only ever appended, in the order the triggering events were
// observed; an existing note is never mutated.
type TrackingNote struct {
	status    string
	message   string
	timestamp time.Time
}

// NewTrackingNote creates a tracking note for the given status and message at
// the given time.
func NewTrackingNote(status, message string, timestamp time.Time) (TrackingNote, error) {
	if status == "" {
		return TrackingNote{}, errs.NewValueIsRequiredError("tracking note status")
	}
	if message == "" {
		return TrackingNote{}, errs.NewValueIsRequiredError("tracking note message")
	}
	if timestamp.IsZero() {
		return TrackingNote{}, errs.NewValueIsRequiredError("tracking note timestamp")
	}

	return TrackingNote{status: status, message: message, timestamp: timestamp}, nil
}

// Status returns the delivery status the note was recorded for.
func (n TrackingNote) Status() string {
	return n.status
}

// Message returns the human-readable description of the event.
func (n TrackingNote) Message() string {
	return n.message
}

// Timestamp returns when the event was observed.
func (n TrackingNote) Timestamp() time.Time {
	return n.timestamp
}
