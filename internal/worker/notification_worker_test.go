package worker

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/event-status-service/internal/config"
	"github.com/spec-kit/event-status-service/internal/events"
)

func TestStartNotificationWorkerSubscribes(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()

	if StartNotificationWorker(dispatcher, zap.New(core), config.NotificationConfig{}) == nil {
		t.Fatalf("expected a notification service")
	}
	if logs.FilterMessage("notification worker started").Len() != 1 {
		t.Fatalf("expected startup to be logged")
	}

	if err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventScheduled, GroupID: "g-1"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	scheduled := logs.FilterMessage("EventScheduled").All()
	if len(scheduled) != 1 {
		t.Fatalf("expected scheduled event to reach the worker, got %d entries", len(scheduled))
	}
	if scheduled[0].LoggerName != "notifications" {
		t.Fatalf("unexpected logger name %q", scheduled[0].LoggerName)
	}
}

func TestStartNotificationWorkerWithoutDispatcher(t *testing.T) {
	if StartNotificationWorker(nil, zap.NewNop(), config.NotificationConfig{}) != nil {
		t.Fatalf("expected nil service without dispatcher")
	}
}
