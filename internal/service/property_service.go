package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/persistence"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

const publicListingCacheKey = "properties:public"

// PropertyCreateInput describes listing creation payload.
type PropertyCreateInput struct {
	Title       string
	Description string
	Price       int64
	Location    domain.Location
	Images      []string
	Features    []string
	// AgentID is honored only for ADMIN callers acting on behalf of an agent.
	AgentID string
}

// PropertyService coordinates listing workflows.
type PropertyService struct {
	properties repository.PropertyRepository
	cache      *persistence.ListingCache
	dispatcher events.Dispatcher
}

// NewPropertyService constructs the service.
func NewPropertyService(properties repository.PropertyRepository, cache *persistence.ListingCache, dispatcher events.Dispatcher) *PropertyService {
	return &PropertyService{properties: properties, cache: cache, dispatcher: dispatcher}
}

// Create publishes a new listing. The owning agent is always the
// authenticated identity unless an ADMIN explicitly records it for another
// agent; a caller-supplied agent id is never trusted otherwise.
func (s *PropertyService) Create(ctx context.Context, identity domain.Identity, input PropertyCreateInput) (*domain.Property, error) {
	if !identity.Role.CanPublishListings() {
		return nil, apperrors.NewForbidden("agent role required")
	}

	agentID := identity.ID
	if identity.Role == domain.RoleAdmin && input.AgentID != "" {
		agentID = input.AgentID
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.Price < 0 {
		return nil, apperrors.NewValidationError("price must not be negative", nil)
	}

	property := &domain.Property{
		AgentID:     agentID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Status:      domain.PropertyStatusActive,
		Location:    input.Location,
		Images:      input.Images,
		Features:    input.Features,
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, publicListingCacheKey)
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventPropertyCreated,
		ActorID: identity.ID,
		Payload: events.PropertyCreatedPayload{
			PropertyID: property.ID,
			AgentID:    property.AgentID,
			Title:      property.Title,
		},
	})
	return property, nil
}

// PropertyUpdateInput carries the mutable listing fields. Nil pointers leave
// the stored value untouched.
type PropertyUpdateInput struct {
	Title       *string
	Description *string
	Price       *int64
	Status      *domain.PropertyStatus
	Location    *domain.Location
	Images      []string
	Features    []string
}

// Update mutates a listing. Only the owning agent or an ADMIN may update; any
// other caller gets not-found, the same answer as for an unknown id.
func (s *PropertyService) Update(ctx context.Context, identity domain.Identity, id string, input PropertyUpdateInput) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("property", nil)
		}
		return nil, err
	}
	if identity.Role != domain.RoleAdmin && property.AgentID != identity.ID {
		return nil, apperrors.NewNotFound("property", nil)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title required", nil)
		}
		property.Title = title
	}
	if input.Description != nil {
		property.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.NewValidationError("price must not be negative", nil)
		}
		property.Price = *input.Price
	}
	if input.Status != nil {
		switch *input.Status {
		case domain.PropertyStatusActive, domain.PropertyStatusSold, domain.PropertyStatusArchived:
			property.Status = *input.Status
		default:
			return nil, apperrors.NewValidationError("unknown status", nil)
		}
	}
	if input.Location != nil {
		property.Location = *input.Location
	}
	if input.Images != nil {
		property.Images = input.Images
	}
	if input.Features != nil {
		property.Features = input.Features
	}

	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, publicListingCacheKey)
	return property, nil
}

// Get returns a single listing. Public, no authentication involved.
func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("property", nil)
		}
		return nil, err
	}
	return property, nil
}

// List returns listings matching the filter. The default unfiltered first
// page is served through the Redis cache.
func (s *PropertyService) List(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, error) {
	cacheable := isDefaultFilter(filter)
	if cacheable {
		if payload, ok := s.cache.Get(ctx, publicListingCacheKey); ok {
			var cached []domain.Property
			if err := json.Unmarshal([]byte(payload), &cached); err == nil {
				return cached, nil
			}
		}
	}

	result, err := s.properties.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []domain.Property{}
	}

	if cacheable {
		if payload, err := json.Marshal(result); err == nil {
			s.cache.Set(ctx, publicListingCacheKey, string(payload))
		}
	}
	return result, nil
}

// defaultPageSize must match the handler's fallback limit; the shared cache
// key only ever holds a default-sized first page.
const defaultPageSize = 20

func isDefaultFilter(filter repository.PropertyFilter) bool {
	return filter.AgentID == nil &&
		filter.City == nil &&
		len(filter.Statuses) == 0 &&
		filter.PriceMin == nil &&
		filter.PriceMax == nil &&
		filter.Limit == defaultPageSize &&
		filter.Offset == 0
}
