package domain

import "time"

// Review rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's append-only rating of a property.
type Review struct {
	ID         string
	PropertyID string
	UserID     string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}
