package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/repository"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// PropertiesHandler manages listing endpoints. Reads are public; creation is
// gated on the AGENT or ADMIN role.
type PropertiesHandler struct {
	service *service.PropertyService
}

// NewPropertiesHandler constructs handler.
func NewPropertiesHandler(propertyService *service.PropertyService) *PropertiesHandler {
	return &PropertiesHandler{service: propertyService}
}

// Create POST /api/properties.
func (h *PropertiesHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	input := service.PropertyCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location: domain.Location{
			Address:   req.Location.Address,
			City:      req.Location.City,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		},
		Images:   req.Images,
		Features: req.Features,
		AgentID:  req.AgentID,
	}
	property, err := h.service.Create(c.Context(), identity, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewPropertySummary(property)})
}

// Update PUT /api/properties/:id. Ownership is enforced in the service; a
// caller who does not own the listing gets 404.
func (h *PropertiesHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	input := service.PropertyUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Features:    req.Features,
	}
	if req.Status != nil {
		status := domain.PropertyStatus(*req.Status)
		input.Status = &status
	}
	if req.Location != nil {
		input.Location = &domain.Location{
			Address:   req.Location.Address,
			City:      req.Location.City,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}
	property, err := h.service.Update(c.Context(), identity, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPropertySummary(property)})
}

// List GET /api/properties.
func (h *PropertiesHandler) List(c *fiber.Ctx) error {
	filter := parsePropertyQuery(c)
	properties, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}

	items := make([]dto.PropertySummary, 0, len(properties))
	for i := range properties {
		items = append(items, dto.NewPropertySummary(&properties[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/properties/:id.
func (h *PropertiesHandler) Get(c *fiber.Ctx) error {
	property, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPropertySummary(property)})
}

func parsePropertyQuery(c *fiber.Ctx) repository.PropertyFilter {
	filter := repository.PropertyFilter{
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if city := c.Query("city"); city != "" {
		filter.City = &city
	}
	if agentID := c.Query("agent_id"); agentID != "" {
		filter.AgentID = &agentID
	}
	if status := c.Query("status"); status != "" {
		filter.Statuses = []domain.PropertyStatus{domain.PropertyStatus(status)}
	}
	if raw := c.Query("price_min"); raw != "" {
		if val, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.PriceMin = &val
		}
	}
	if raw := c.Query("price_max"); raw != "" {
		if val, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.PriceMax = &val
		}
	}
	return filter
}

func parseIntQuery(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}
