package domain

import "time"

// AnalyticsEvent is an append-only usage record attributed to a user.
type AnalyticsEvent struct {
	ID         string
	UserID     string
	Name       string
	Properties string
	CreatedAt  time.Time
}

// AnalyticsSummary aggregates event counts per event name.
type AnalyticsSummary struct {
	Name  string
	Count int64
}
