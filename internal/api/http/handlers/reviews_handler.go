package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// ReviewsHandler manages property review endpoints.
type ReviewsHandler struct {
	service *service.ReviewService
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(reviewService *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{service: reviewService}
}

// Create POST /api/properties/:id/reviews. The reviewer is the authenticated
// identity regardless of anything in the body.
func (h *ReviewsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	review, err := h.service.Create(c.Context(), identity, c.Params("id"), req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewReviewResponse(review)})
}

// List GET /api/properties/:id/reviews. Public.
func (h *ReviewsHandler) List(c *fiber.Ctx) error {
	reviews, err := h.service.ListByProperty(c.Context(), c.Params("id"),
		parseIntQuery(c, "limit", 20), parseIntQuery(c, "offset", 0))
	if err != nil {
		return err
	}

	items := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, dto.NewReviewResponse(&reviews[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
