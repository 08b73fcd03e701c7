package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/event-status-service/internal/config"
	"github.com/spec-kit/event-status-service/internal/events"
	"github.com/spec-kit/event-status-service/internal/service"
)

// StartNotificationWorker subscribes the notification service to scheduled
// events on dispatcher. It returns nil when there is nothing to listen on.
func StartNotificationWorker(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *service.NotificationService {
	if dispatcher == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	notifications := service.NewNotificationService(dispatcher, logger.Named("notifications"), cfg)
	notifications.RegisterHandlers()
	logger.Info("notification worker started",
		zap.Bool("webhook_enabled", cfg.WebhookURL != ""),
		zap.Strings("event_types", []string{string(events.EventScheduled)}))
	return notifications
}
