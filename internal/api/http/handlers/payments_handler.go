package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// PaymentsHandler records payments and lists the caller's history.
type PaymentsHandler struct {
	service *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{service: paymentService}
}

// Record POST /api/payments. The payer is the authenticated identity.
func (h *PaymentsHandler) Record(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	payment, err := h.service.Record(c.Context(), identity, req.PropertyID, req.Amount)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewPaymentResponse(payment)})
}

// List GET /api/payments.
func (h *PaymentsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	payments, err := h.service.ListForUser(c.Context(), identity,
		parseIntQuery(c, "limit", 20), parseIntQuery(c, "offset", 0))
	if err != nil {
		return err
	}

	items := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, dto.NewPaymentResponse(&payments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
