package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// ReviewService coordinates append-only property reviews.
type ReviewService struct {
	reviews    repository.ReviewRepository
	properties repository.PropertyRepository
	dispatcher events.Dispatcher
}

// NewReviewService constructs the service.
func NewReviewService(reviews repository.ReviewRepository, properties repository.PropertyRepository, dispatcher events.Dispatcher) *ReviewService {
	return &ReviewService{reviews: reviews, properties: properties, dispatcher: dispatcher}
}

// Create records a review authored by the authenticated identity. The
// reviewer id always comes from the verified token, never from the request
// body, so one user cannot file reviews under another's id.
func (s *ReviewService) Create(ctx context.Context, identity domain.Identity, propertyID string, rating int, comment string) (*domain.Review, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("property", nil)
		}
		return nil, err
	}

	review := &domain.Review{
		PropertyID: property.ID,
		UserID:     identity.ID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventReviewCreated,
		ActorID: identity.ID,
		Payload: events.ReviewCreatedPayload{
			ReviewID:   review.ID,
			PropertyID: property.ID,
			AgentID:    property.AgentID,
			Rating:     review.Rating,
		},
	})
	return review, nil
}

// ListByProperty returns reviews for a listing. Public.
func (s *ReviewService) ListByProperty(ctx context.Context, propertyID string, limit, offset int) ([]domain.Review, error) {
	reviews, err := s.reviews.ListByProperty(ctx, propertyID, limit, offset)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}
