package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/realty-service/internal/api/http"
	"github.com/spec-kit/realty-service/internal/api/http/handlers"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/config"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/observability"
	"github.com/spec-kit/realty-service/internal/persistence"
	"github.com/spec-kit/realty-service/internal/repository"
	"github.com/spec-kit/realty-service/internal/service"
	"github.com/spec-kit/realty-service/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	propertyRepo := repository.NewPropertyRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	conversationRepo := repository.NewConversationRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	analyticsRepo := repository.NewAnalyticsRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	listingCache := persistence.NewListingCache(redis, cfg.Redis.ListingCacheTTL())

	authService := service.NewAuthService(cfg.Auth, userRepo)
	propertyService := service.NewPropertyService(propertyRepo, listingCache, dispatcher)
	reviewService := service.NewReviewService(reviewRepo, propertyRepo, dispatcher)
	conversationService := service.NewConversationService(conversationRepo, messageRepo, userRepo, dispatcher)
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger)
	analyticsService := service.NewAnalyticsService(analyticsRepo)
	paymentService := service.NewPaymentService(paymentRepo, propertyRepo, dispatcher)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Properties:     handlers.NewPropertiesHandler(propertyService),
		Reviews:        handlers.NewReviewsHandler(reviewService),
		Conversations:  handlers.NewConversationsHandler(conversationService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		AuthMiddleware: authMiddleware,
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
