package service

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/event-status-service/internal/domain"
	"github.com/spec-kit/event-status-service/internal/events"
	apperrors "github.com/spec-kit/event-status-service/pkg/util/errorutil"
)

// maxReviewDurationHours caps the review window at one year.
const maxReviewDurationHours = 24 * 365

// EventWriter persists scheduled events.
type EventWriter interface {
	Create(ctx context.Context, event *domain.Event) error
}

// EventService schedules events and exposes the last event of a group.
type EventService struct {
	writer     EventWriter
	reader     LastEventRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// EventDependencies bundles collaborators for the event service.
type EventDependencies struct {
	Writer     EventWriter
	Reader     LastEventRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
}

// ScheduleEventInput describes a new event for a group.
type ScheduleEventInput struct {
	GroupID             string    `json:"group_id"`
	Title               string    `json:"title"`
	EndDate             time.Time `json:"end_date"`
	ReviewDurationHours float64   `json:"review_duration_hours"`
}

// Validate checks the input before anything is stored.
func (in ScheduleEventInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.GroupID, validation.Required, validation.Length(1, 128)),
		validation.Field(&in.Title, validation.Length(0, 200)),
		validation.Field(&in.EndDate, validation.Required),
		validation.Field(&in.ReviewDurationHours, validation.Min(0.0), validation.Max(float64(maxReviewDurationHours))),
	)
}

// LastEventView pairs an event with the status computed for it.
type LastEventView struct {
	Event  *domain.Event
	Status domain.EventStatus
}

// NewEventService constructs the service.
func NewEventService(deps EventDependencies) *EventService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{
		writer:     deps.Writer,
		reader:     deps.Reader,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        clock,
	}
}

// ScheduleEvent validates and stores a new event, then announces it.
func (s *EventService) ScheduleEvent(ctx context.Context, input ScheduleEventInput) (*domain.Event, error) {
	if err := input.Validate(); err != nil {
		return nil, toValidationError(err)
	}

	event := &domain.Event{
		ID:                  uuid.NewString(),
		GroupID:             input.GroupID,
		Title:               input.Title,
		EndDate:             input.EndDate.UTC().Truncate(domain.EndDatePrecision),
		ReviewDurationHours: input.ReviewDurationHours,
		CreatedAt:           s.now().UTC(),
	}
	if err := s.writer.Create(ctx, event); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventScheduled,
		GroupID:   event.GroupID,
		Timestamp: event.CreatedAt,
		Payload: events.EventScheduledPayload{
			EventID:             event.ID,
			Title:               event.Title,
			EndDate:             event.EndDate,
			ReviewDurationHours: event.ReviewDurationHours,
			ReviewEnd:           event.ReviewEnd(),
		},
	})
	return event, nil
}

// GetLastEvent returns the group's last event with its current status.
func (s *EventService) GetLastEvent(ctx context.Context, groupID string) (*LastEventView, error) {
	event, err := s.reader.GetLastEvent(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.NewNotFound("event", map[string]any{"group_id": groupID})
	}
	return &LastEventView{Event: event, Status: domain.ClassifyEvent(event, s.now())}, nil
}

func (s *EventService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed",
			zap.String("event_type", string(event.Type)),
			zap.String("group_id", event.GroupID),
			zap.Error(err))
	}
}

func toValidationError(err error) error {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewInternalError(err)
	}
	details := make(map[string]any, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		details[field] = fieldErr.Error()
	}
	return apperrors.NewValidationError("invalid event", details)
}
