package dto

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

// CreateReviewRequest payload for new reviews. A user_id field supplied by
// the client is deliberately absent: the reviewer is the authenticated
// identity.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ReviewResponse wire form of a review.
type ReviewResponse struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	UserID     string    `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewReviewResponse maps a domain review.
func NewReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID,
		PropertyID: review.PropertyID,
		UserID:     review.UserID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}
