package dto

import (
	"time"

	"github.com/spec-kit/event-status-service/internal/domain"
)

// ScheduleEventRequest payload.
type ScheduleEventRequest struct {
	Title               string    `json:"title"`
	EndDate             time.Time `json:"end_date"`
	ReviewDurationHours float64   `json:"review_duration_hours"`
}

// EventStatusResponse is returned by the status endpoint.
type EventStatusResponse struct {
	GroupID string             `json:"group_id"`
	Status  domain.EventStatus `json:"status"`
}

// EventResponse describes a stored event.
type EventResponse struct {
	ID                  string              `json:"id"`
	GroupID             string              `json:"group_id"`
	Title               string              `json:"title,omitempty"`
	EndDate             time.Time           `json:"end_date"`
	ReviewDurationHours float64             `json:"review_duration_hours"`
	ReviewEnd           time.Time           `json:"review_end"`
	CreatedAt           time.Time           `json:"created_at"`
	Status              *domain.EventStatus `json:"status,omitempty"`
}
