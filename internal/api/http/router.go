package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/http/handlers"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Properties     *handlers.PropertiesHandler
	Reviews        *handlers.ReviewsHandler
	Conversations  *handlers.ConversationsHandler
	Notifications  *handlers.NotificationsHandler
	Analytics      *handlers.AnalyticsHandler
	Payments       *handlers.PaymentsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Public reads stay outside the auth gate;
// everything mutating or user-scoped goes through it.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	api.Get("/properties", cfg.Properties.List)
	api.Get("/properties/:id", cfg.Properties.Get)
	api.Get("/properties/:id/reviews", cfg.Reviews.List)

	api.Post("/properties",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleAgent, domain.RoleAdmin),
		cfg.Properties.Create)
	api.Put("/properties/:id", cfg.AuthMiddleware.Handle, cfg.Properties.Update)
	api.Post("/properties/:id/reviews", cfg.AuthMiddleware.Handle, cfg.Reviews.Create)

	api.Get("/users/:id", cfg.AuthMiddleware.Handle, cfg.Auth.GetUser)

	conversations := api.Group("/conversations", cfg.AuthMiddleware.Handle)
	conversations.Post("", cfg.Conversations.Create)
	conversations.Get("", cfg.Conversations.List)
	conversations.Get("/:id/messages", cfg.Conversations.Messages)
	conversations.Post("/:id/messages", cfg.Conversations.Send)

	api.Get("/notifications", cfg.AuthMiddleware.Handle, cfg.Notifications.List)

	api.Post("/analytics/events", cfg.AuthMiddleware.Handle, cfg.Analytics.Record)
	api.Get("/analytics/summary",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleAdmin),
		cfg.Analytics.Summary)

	api.Post("/payments", cfg.AuthMiddleware.Handle, cfg.Payments.Record)
	api.Get("/payments", cfg.AuthMiddleware.Handle, cfg.Payments.List)
}
