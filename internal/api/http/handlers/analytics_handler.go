package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// AnalyticsHandler records usage events and serves the admin summary.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: analyticsService}
}

// Record POST /api/analytics/events.
func (h *AnalyticsHandler) Record(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.RecordAnalyticsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	event, err := h.service.Record(c.Context(), identity, req.Name, req.Properties)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"id":         event.ID,
		"name":       event.Name,
		"created_at": event.CreatedAt,
	}})
}

// Summary GET /api/analytics/summary. Route is ADMIN-gated.
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.Context())
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(summary))
	for _, entry := range summary {
		items = append(items, fiber.Map{"name": entry.Name, "count": entry.Count})
	}
	return c.JSON(fiber.Map{"data": items})
}
