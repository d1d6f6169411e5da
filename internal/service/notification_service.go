package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
)

// NotificationService turns domain events into persisted notification records
// for the affected users and serves each user's feed.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to the events that produce notifications.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventReviewCreated, n.handleReviewCreated)
	n.dispatcher.Subscribe(events.EventMessageSent, n.handleMessageSent)
	n.dispatcher.Subscribe(events.EventPaymentRecorded, n.handlePaymentRecorded)
}

// ListForUser returns the caller's notifications, newest first.
func (n *NotificationService) ListForUser(ctx context.Context, identity domain.Identity, limit, offset int) ([]domain.Notification, error) {
	notifications, err := n.notifications.ListByUser(ctx, identity.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return notifications, nil
}

func (n *NotificationService) handleReviewCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ReviewCreatedPayload)
	if !ok {
		return nil
	}
	return n.store(ctx, payload.AgentID, domain.NotificationReviewReceived, event)
}

func (n *NotificationService) handleMessageSent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MessageSentPayload)
	if !ok {
		return nil
	}
	for _, recipient := range payload.Recipients {
		if err := n.store(ctx, recipient, domain.NotificationMessageReceived, event); err != nil {
			return err
		}
	}
	return nil
}

func (n *NotificationService) handlePaymentRecorded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PaymentRecordedPayload)
	if !ok {
		return nil
	}
	return n.store(ctx, payload.AgentID, domain.NotificationPaymentRecorded, event)
}

func (n *NotificationService) store(ctx context.Context, userID string, kind domain.NotificationType, event events.Event) error {
	raw, err := json.Marshal(event.Payload)
	if err != nil {
		raw = []byte("{}")
	}

	notification := &domain.Notification{
		UserID:  userID,
		Type:    kind,
		Payload: string(raw),
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Error("store notification failed",
			zap.String("user_id", userID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}
	return nil
}
