package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// ConversationsHandler manages conversation and message endpoints. All routes
// require authentication; membership checks live in the service.
type ConversationsHandler struct {
	service *service.ConversationService
}

// NewConversationsHandler constructs handler.
func NewConversationsHandler(conversationService *service.ConversationService) *ConversationsHandler {
	return &ConversationsHandler{service: conversationService}
}

// Create POST /api/conversations.
func (h *ConversationsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	conversation, err := h.service.CreateOrGet(c.Context(), identity, req.ParticipantID, req.PropertyID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewConversationResponse(conversation)})
}

// List GET /api/conversations.
func (h *ConversationsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	conversations, err := h.service.ListForUser(c.Context(), identity,
		parseIntQuery(c, "limit", 20), parseIntQuery(c, "offset", 0))
	if err != nil {
		return err
	}

	items := make([]dto.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		items = append(items, dto.NewConversationResponse(&conversations[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Messages GET /api/conversations/:id/messages.
func (h *ConversationsHandler) Messages(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	messages, err := h.service.Messages(c.Context(), identity, c.Params("id"))
	if err != nil {
		return err
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, dto.NewMessageResponse(&messages[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Send POST /api/conversations/:id/messages.
func (h *ConversationsHandler) Send(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	msg, err := h.service.Send(c.Context(), identity, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewMessageResponse(msg)})
}
