package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/event-status-service/internal/api/http/handlers"
	"github.com/spec-kit/event-status-service/internal/auth"
	"github.com/spec-kit/event-status-service/internal/domain"
	"github.com/spec-kit/event-status-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Events         *handlers.EventsHandler
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	groups := app.Group("/groups/:groupId", cfg.AuthMiddleware.Handle, auth.RequireGroupAccess("groupId"))
	groups.Get("/events/last/status", cfg.Events.LastEventStatus)
	groups.Get("/events/last", cfg.Events.LastEvent)
	groups.Post("/events", auth.RequireRole(domain.RoleOrganizer), cfg.Events.ScheduleEvent)
}
