package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventScheduled EventType = "event_scheduled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	GroupID   string      `json:"group_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// EventScheduledPayload payload.
type EventScheduledPayload struct {
	EventID             string    `json:"event_id"`
	Title               string    `json:"title,omitempty"`
	EndDate             time.Time `json:"end_date"`
	ReviewDurationHours float64   `json:"review_duration_hours"`
	ReviewEnd           time.Time `json:"review_end"`
}
