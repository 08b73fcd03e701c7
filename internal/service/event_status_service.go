package service

import (
	"context"
	"time"

	"github.com/spec-kit/event-status-service/internal/domain"
)

// LastEventRepository provides the most recent event of a group. It returns
// nil without error when the group has no event.
type LastEventRepository interface {
	GetLastEvent(ctx context.Context, groupID string) (*domain.Event, error)
}

// CheckLastEventStatusInput identifies the group to check.
type CheckLastEventStatusInput struct {
	GroupID string
}

// EventStatusService computes the status of a group's last event.
type EventStatusService struct {
	events LastEventRepository
	now    func() time.Time
}

// EventStatusDependencies bundles collaborators for the status service.
type EventStatusDependencies struct {
	LastEventRepo LastEventRepository
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// NewEventStatusService constructs the service.
func NewEventStatusService(deps EventStatusDependencies) *EventStatusService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &EventStatusService{events: deps.LastEventRepo, now: clock}
}

// CheckLastEventStatus looks up the group's last event once and classifies it
// against the current time. Repository errors are returned as is.
func (s *EventStatusService) CheckLastEventStatus(ctx context.Context, input CheckLastEventStatusInput) (domain.EventStatus, error) {
	event, err := s.events.GetLastEvent(ctx, input.GroupID)
	if err != nil {
		return "", err
	}
	return domain.ClassifyEvent(event, s.now()), nil
}
