package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// AnalyticsRepository manages append-only analytics events.
type AnalyticsRepository interface {
	Create(ctx context.Context, event *domain.AnalyticsEvent) error
	Summary(ctx context.Context) ([]domain.AnalyticsSummary, error)
}

type analyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository builds repository.
func NewAnalyticsRepository(pool *pgxpool.Pool) AnalyticsRepository {
	return &analyticsRepository{pool: pool}
}

func (r *analyticsRepository) Create(ctx context.Context, event *domain.AnalyticsEvent) error {
	const query = `
        INSERT INTO analytics_events (user_id, name, properties)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		event.UserID,
		event.Name,
		event.Properties,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *analyticsRepository) Summary(ctx context.Context) ([]domain.AnalyticsSummary, error) {
	const query = `
        SELECT name, COUNT(*) FROM analytics_events
        GROUP BY name ORDER BY COUNT(*) DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AnalyticsSummary
	for rows.Next() {
		var summary domain.AnalyticsSummary
		if err := rows.Scan(&summary.Name, &summary.Count); err != nil {
			return nil, err
		}
		result = append(result, summary)
	}
	return result, rows.Err()
}
