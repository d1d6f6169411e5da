package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// NotificationsHandler serves the authenticated user's notification feed.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// List GET /api/notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	notifications, err := h.service.ListForUser(c.Context(), identity,
		parseIntQuery(c, "limit", 20), parseIntQuery(c, "offset", 0))
	if err != nil {
		return err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, dto.NewNotificationResponse(&notifications[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
