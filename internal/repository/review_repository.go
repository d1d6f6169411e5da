package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// ReviewRepository manages append-only property reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByProperty(ctx context.Context, propertyID string, limit, offset int) ([]domain.Review, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository builds repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (property_id, user_id, rating, comment)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		review.PropertyID,
		review.UserID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
}

func (r *reviewRepository) ListByProperty(ctx context.Context, propertyID string, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
        SELECT id, property_id, user_id, rating, comment, created_at
        FROM reviews WHERE property_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, propertyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.PropertyID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}
