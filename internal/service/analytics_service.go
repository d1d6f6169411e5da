package service

import (
	"context"
	"strings"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// AnalyticsService records append-only usage events attributed to users.
type AnalyticsService struct {
	analytics repository.AnalyticsRepository
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(analytics repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analytics: analytics}
}

// Record stores an event attributed to the authenticated identity; a user id
// supplied in the request is ignored.
func (s *AnalyticsService) Record(ctx context.Context, identity domain.Identity, name, properties string) (*domain.AnalyticsEvent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("event name required", nil)
	}

	event := &domain.AnalyticsEvent{
		UserID:     identity.ID,
		Name:       name,
		Properties: properties,
	}
	if err := s.analytics.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Summary aggregates event counts. Restricted to ADMIN at the route level.
func (s *AnalyticsService) Summary(ctx context.Context) ([]domain.AnalyticsSummary, error) {
	summary, err := s.analytics.Summary(ctx)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		summary = []domain.AnalyticsSummary{}
	}
	return summary, nil
}
