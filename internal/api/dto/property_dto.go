package dto

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

// LocationPayload mirrors the structured location.
type LocationPayload struct {
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// CreatePropertyRequest payload for new listings.
type CreatePropertyRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Price       int64           `json:"price" validate:"gte=0"`
	Location    LocationPayload `json:"location"`
	Images      []string        `json:"images" validate:"omitempty,dive,url"`
	Features    []string        `json:"features"`
	AgentID     string          `json:"agent_id"`
}

// UpdatePropertyRequest payload for listing updates. Absent fields keep the
// stored value.
type UpdatePropertyRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *int64           `json:"price" validate:"omitempty,gte=0"`
	Status      *string          `json:"status" validate:"omitempty,oneof=ACTIVE SOLD ARCHIVED"`
	Location    *LocationPayload `json:"location"`
	Images      []string         `json:"images" validate:"omitempty,dive,url"`
	Features    []string         `json:"features"`
}

// PropertySummary is the wire form of a listing with parsed payloads.
type PropertySummary struct {
	ID          string          `json:"id"`
	AgentID     string          `json:"agent_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       int64           `json:"price"`
	Status      string          `json:"status"`
	Location    LocationPayload `json:"location"`
	Images      []string        `json:"images"`
	Features    []string        `json:"features"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewPropertySummary maps a domain property.
func NewPropertySummary(property *domain.Property) PropertySummary {
	return PropertySummary{
		ID:          property.ID,
		AgentID:     property.AgentID,
		Title:       property.Title,
		Description: property.Description,
		Price:       property.Price,
		Status:      string(property.Status),
		Location: LocationPayload{
			Address:   property.Location.Address,
			City:      property.Location.City,
			Latitude:  property.Location.Latitude,
			Longitude: property.Location.Longitude,
		},
		Images:    property.Images,
		Features:  property.Features,
		CreatedAt: property.CreatedAt,
	}
}
