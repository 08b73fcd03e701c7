package domain

import (
	"math"
	"time"
)

// EventStatus enumerates the lifecycle states of a group's event.
type EventStatus string

const (
	EventStatusClosed   EventStatus = "closed"
	EventStatusActive   EventStatus = "active"
	EventStatusInReview EventStatus = "in_review"
)

// Valid reports whether s is one of the known statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusClosed, EventStatusActive, EventStatusInReview:
		return true
	}
	return false
}

// EndDatePrecision is the resolution end dates are stored with. Stores order
// events by end date at this precision and break ties on CreatedAt.
const EndDatePrecision = time.Millisecond

// Event is a recurring period owned by a group, followed by a review window.
type Event struct {
	ID                  string
	GroupID             string
	Title               string
	EndDate             time.Time
	ReviewDurationHours float64
	CreatedAt           time.Time
}

// ReviewDuration returns the review window as a time.Duration. Windows too
// long for a Duration saturate at the maximum; negative or NaN hours count as
// no window.
func (e *Event) ReviewDuration() time.Duration {
	d := e.ReviewDurationHours * float64(time.Hour)
	if !(d > 0) {
		return 0
	}
	if d >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

// ReviewEnd returns the instant the review window closes.
func (e *Event) ReviewEnd() time.Time {
	return e.EndDate.Add(e.ReviewDuration())
}

// ClassifyEvent computes the status of event at now. Both boundaries are
// inclusive: an event is still active at its end date and still in review at
// the end of its review window. A nil event means the group has none.
func ClassifyEvent(event *Event, now time.Time) EventStatus {
	if event == nil {
		return EventStatusClosed
	}
	if !now.After(event.EndDate) {
		return EventStatusActive
	}
	if !now.After(event.ReviewEnd()) {
		return EventStatusInReview
	}
	return EventStatusClosed
}
