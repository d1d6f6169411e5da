package service

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
)

// captureDispatcher records published events synchronously, like the real
// in-memory dispatcher but without handlers.
type captureDispatcher struct {
	published []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type stubPropertyRepo struct {
	properties map[string]*domain.Property
	nextID     int
}

func newStubPropertyRepo() *stubPropertyRepo {
	return &stubPropertyRepo{properties: make(map[string]*domain.Property)}
}

func (r *stubPropertyRepo) Create(_ context.Context, property *domain.Property) error {
	r.nextID++
	property.ID = "prop-" + strconv.Itoa(r.nextID)
	property.CreatedAt = time.Now()
	property.UpdatedAt = property.CreatedAt
	clone := *property
	r.properties[property.ID] = &clone
	return nil
}

func (r *stubPropertyRepo) Update(_ context.Context, property *domain.Property) error {
	if _, ok := r.properties[property.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *property
	r.properties[property.ID] = &clone
	return nil
}

func (r *stubPropertyRepo) GetByID(_ context.Context, id string) (*domain.Property, error) {
	property, ok := r.properties[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *property
	return &clone, nil
}

func (r *stubPropertyRepo) ListWithFilter(_ context.Context, _ repository.PropertyFilter) ([]domain.Property, error) {
	result := make([]domain.Property, 0, len(r.properties))
	for _, property := range r.properties {
		result = append(result, *property)
	}
	return result, nil
}

type stubReviewRepo struct {
	reviews []domain.Review
}

func (r *stubReviewRepo) Create(_ context.Context, review *domain.Review) error {
	review.ID = "review-" + strconv.Itoa(len(r.reviews)+1)
	review.CreatedAt = time.Now()
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *stubReviewRepo) ListByProperty(_ context.Context, propertyID string, _, _ int) ([]domain.Review, error) {
	var result []domain.Review
	for _, review := range r.reviews {
		if review.PropertyID == propertyID {
			result = append(result, review)
		}
	}
	return result, nil
}

type stubConversationRepo struct {
	conversations map[string]*domain.Conversation
	nextID        int
}

func newStubConversationRepo() *stubConversationRepo {
	return &stubConversationRepo{conversations: make(map[string]*domain.Conversation)}
}

func (r *stubConversationRepo) Create(_ context.Context, conversation *domain.Conversation) error {
	r.nextID++
	conversation.ID = "conv-" + strconv.Itoa(r.nextID)
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = conversation.CreatedAt
	clone := *conversation
	r.conversations[conversation.ID] = &clone
	return nil
}

func (r *stubConversationRepo) GetByID(_ context.Context, id string) (*domain.Conversation, error) {
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *conversation
	return &clone, nil
}

func (r *stubConversationRepo) FindByParticipants(_ context.Context, participants []string, propertyID *string) (*domain.Conversation, error) {
	for _, conversation := range r.conversations {
		if !sameParticipants(conversation.Participants, participants) {
			continue
		}
		if (conversation.PropertyID == nil) != (propertyID == nil) {
			continue
		}
		if propertyID != nil && *conversation.PropertyID != *propertyID {
			continue
		}
		clone := *conversation
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubConversationRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]domain.Conversation, error) {
	var result []domain.Conversation
	for _, conversation := range r.conversations {
		if conversation.HasParticipant(userID) {
			result = append(result, *conversation)
		}
	}
	return result, nil
}

func (r *stubConversationRepo) Touch(_ context.Context, id string) error {
	conversation, ok := r.conversations[id]
	if !ok {
		return pgx.ErrNoRows
	}
	conversation.UpdatedAt = time.Now()
	return nil
}

func sameParticipants(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}

type stubMessageRepo struct {
	messages []domain.Message
}

func (r *stubMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	msg.ID = "msg-" + strconv.Itoa(len(r.messages)+1)
	msg.CreatedAt = time.Now()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *stubMessageRepo) ListByConversation(_ context.Context, conversationID string) ([]domain.Message, error) {
	var result []domain.Message
	for _, msg := range r.messages {
		if msg.ConversationID == conversationID {
			result = append(result, msg)
		}
	}
	return result, nil
}

type stubNotificationRepo struct {
	notifications []domain.Notification
}

func (r *stubNotificationRepo) Create(_ context.Context, notification *domain.Notification) error {
	notification.ID = "notif-" + strconv.Itoa(len(r.notifications)+1)
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *stubNotificationRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]domain.Notification, error) {
	var result []domain.Notification
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			result = append(result, notification)
		}
	}
	return result, nil
}

type stubPaymentRepo struct {
	payments []domain.Payment
}

func (r *stubPaymentRepo) Create(_ context.Context, payment *domain.Payment) error {
	payment.ID = "pay-" + strconv.Itoa(len(r.payments)+1)
	payment.CreatedAt = time.Now()
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *stubPaymentRepo) ListByPayer(_ context.Context, payerID string, _, _ int) ([]domain.Payment, error) {
	var result []domain.Payment
	for _, payment := range r.payments {
		if payment.PayerID == payerID {
			result = append(result, payment)
		}
	}
	return result, nil
}

type stubAnalyticsRepo struct {
	events []domain.AnalyticsEvent
}

func (r *stubAnalyticsRepo) Create(_ context.Context, event *domain.AnalyticsEvent) error {
	event.ID = "evt-" + strconv.Itoa(len(r.events)+1)
	event.CreatedAt = time.Now()
	r.events = append(r.events, *event)
	return nil
}

func (r *stubAnalyticsRepo) Summary(_ context.Context) ([]domain.AnalyticsSummary, error) {
	counts := make(map[string]int64)
	for _, event := range r.events {
		counts[event.Name]++
	}
	var result []domain.AnalyticsSummary
	for name, count := range counts {
		result = append(result, domain.AnalyticsSummary{Name: name, Count: count})
	}
	return result, nil
}
