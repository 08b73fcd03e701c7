package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/event-status-service/internal/api/http"
	"github.com/spec-kit/event-status-service/internal/api/http/handlers"
	"github.com/spec-kit/event-status-service/internal/auth"
	"github.com/spec-kit/event-status-service/internal/config"
	"github.com/spec-kit/event-status-service/internal/events"
	"github.com/spec-kit/event-status-service/internal/observability"
	"github.com/spec-kit/event-status-service/internal/persistence"
	"github.com/spec-kit/event-status-service/internal/repository"
	"github.com/spec-kit/event-status-service/internal/service"
	"github.com/spec-kit/event-status-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dependencies := map[string]handlers.Pinger{}
	var eventRepo repository.EventRepository

	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		redis, err := persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redis.Close()
		dependencies["redis"] = redis
		eventRepo = repository.NewRedisEventRepository(redis.Client)
	default:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		if pg.PoolHandle() == nil {
			logger.Fatal("postgres event store selected but POSTGRES_DSN is empty")
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		dependencies["postgres"] = pg
		eventRepo = repository.NewPostgresEventRepository(pg.PoolHandle())
	}
	logger.Info("event store ready", zap.String("backend", cfg.Store.Backend))

	metrics := observability.NewMetrics("event_status")
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(dispatcher, logger, cfg.Notification)

	statusService := service.NewEventStatusService(service.EventStatusDependencies{
		LastEventRepo: eventRepo,
	})
	eventService := service.NewEventService(service.EventDependencies{
		Writer:     eventRepo,
		Reader:     eventRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTLMinute)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Events:         handlers.NewEventsHandler(statusService, eventService, metrics),
		Metrics:        metrics,
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
