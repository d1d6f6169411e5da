package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
)

func TestNotificationService_ReviewCreated(t *testing.T) {
	repo := &stubNotificationRepo{}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(repo, dispatcher, zap.NewNop())
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventReviewCreated,
		ActorID: "user-9",
		Payload: events.ReviewCreatedPayload{ReviewID: "review-1", PropertyID: "prop-1", AgentID: "agent-1", Rating: 5},
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	agent := domain.Identity{ID: "agent-1", Role: domain.RoleAgent}
	notifications, err := svc.ListForUser(context.Background(), agent, 20, 0)
	if err != nil {
		t.Fatalf("ListForUser returned error: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected one notification for the agent, got %d", len(notifications))
	}
	if notifications[0].Type != domain.NotificationReviewReceived {
		t.Fatalf("unexpected notification type %s", notifications[0].Type)
	}
}

func TestNotificationService_MessageSent_FanOut(t *testing.T) {
	repo := &stubNotificationRepo{}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(repo, dispatcher, zap.NewNop())
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventMessageSent,
		ActorID: "user-1",
		Payload: events.MessageSentPayload{
			MessageID:      "msg-1",
			ConversationID: "conv-1",
			Recipients:     []string{"user-2", "user-3"},
			BodyPreview:    "hello",
		},
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	if len(repo.notifications) != 2 {
		t.Fatalf("expected one notification per recipient, got %d", len(repo.notifications))
	}
	for _, notification := range repo.notifications {
		if notification.Type != domain.NotificationMessageReceived {
			t.Fatalf("unexpected notification type %s", notification.Type)
		}
		if notification.UserID == "user-1" {
			t.Fatalf("sender must not be notified about their own message")
		}
	}
}

func TestNotificationService_IgnoresUnrelatedEvents(t *testing.T) {
	repo := &stubNotificationRepo{}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(repo, dispatcher, zap.NewNop())
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventPropertyCreated,
		ActorID: "agent-1",
		Payload: events.PropertyCreatedPayload{PropertyID: "prop-1", AgentID: "agent-1", Title: "Loft"},
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if len(repo.notifications) != 0 {
		t.Fatalf("property_created must not produce notifications, got %d", len(repo.notifications))
	}
}
