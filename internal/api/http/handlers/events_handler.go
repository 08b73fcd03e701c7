package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-status-service/internal/api/dto"
	"github.com/spec-kit/event-status-service/internal/domain"
	"github.com/spec-kit/event-status-service/internal/observability"
	"github.com/spec-kit/event-status-service/internal/service"
	apperrors "github.com/spec-kit/event-status-service/pkg/util/errorutil"
)

// EventsHandler exposes group event endpoints.
type EventsHandler struct {
	status  *service.EventStatusService
	events  *service.EventService
	metrics *observability.Metrics
}

// NewEventsHandler constructs handler.
func NewEventsHandler(statusService *service.EventStatusService, eventService *service.EventService, metrics *observability.Metrics) *EventsHandler {
	return &EventsHandler{status: statusService, events: eventService, metrics: metrics}
}

// LastEventStatus GET /groups/:groupId/events/last/status.
func (h *EventsHandler) LastEventStatus(c *fiber.Ctx) error {
	groupID, err := groupIDParam(c)
	if err != nil {
		return err
	}
	status, err := h.status.CheckLastEventStatus(c.UserContext(), service.CheckLastEventStatusInput{GroupID: groupID})
	if err != nil {
		return err
	}
	h.metrics.RecordStatusCheck(status)
	return c.JSON(fiber.Map{"data": dto.EventStatusResponse{GroupID: groupID, Status: status}})
}

// LastEvent GET /groups/:groupId/events/last.
func (h *EventsHandler) LastEvent(c *fiber.Ctx) error {
	groupID, err := groupIDParam(c)
	if err != nil {
		return err
	}
	view, err := h.events.GetLastEvent(c.UserContext(), groupID)
	if err != nil {
		return err
	}
	resp := eventResponse(view.Event)
	resp.Status = &view.Status
	return c.JSON(fiber.Map{"data": resp})
}

// ScheduleEvent POST /groups/:groupId/events.
func (h *EventsHandler) ScheduleEvent(c *fiber.Ctx) error {
	groupID, err := groupIDParam(c)
	if err != nil {
		return err
	}
	var req dto.ScheduleEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	event, err := h.events.ScheduleEvent(c.UserContext(), service.ScheduleEventInput{
		GroupID:             groupID,
		Title:               strings.TrimSpace(req.Title),
		EndDate:             req.EndDate,
		ReviewDurationHours: req.ReviewDurationHours,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": eventResponse(event)})
}

func groupIDParam(c *fiber.Ctx) (string, error) {
	groupID := strings.TrimSpace(c.Params("groupId"))
	if groupID == "" {
		return "", apperrors.NewValidationError("group id required", nil)
	}
	return groupID, nil
}

func eventResponse(event *domain.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:                  event.ID,
		GroupID:             event.GroupID,
		Title:               event.Title,
		EndDate:             event.EndDate,
		ReviewDurationHours: event.ReviewDurationHours,
		ReviewEnd:           event.ReviewEnd(),
		CreatedAt:           event.CreatedAt,
	}
}
