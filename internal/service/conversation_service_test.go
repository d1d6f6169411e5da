package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

func seedUsers(t *testing.T, repo *stubUserRepo, emails ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(emails))
	for _, email := range emails {
		user := &domain.User{Name: email, Email: email, PasswordHash: "x", Role: domain.RoleUser}
		if err := repo.Create(context.Background(), user); err != nil {
			t.Fatalf("seed user %s: %v", email, err)
		}
		ids = append(ids, user.ID)
	}
	return ids
}

func TestConversationService_CreateOrGet_ReturnsExisting(t *testing.T) {
	users := newStubUserRepo()
	ids := seedUsers(t, users, "a@example.com", "b@example.com")
	svc := NewConversationService(newStubConversationRepo(), &stubMessageRepo{}, users, &captureDispatcher{})

	alice := domain.Identity{ID: ids[0], Role: domain.RoleUser}
	bob := domain.Identity{ID: ids[1], Role: domain.RoleUser}

	first, err := svc.CreateOrGet(context.Background(), alice, ids[1], nil)
	if err != nil {
		t.Fatalf("CreateOrGet returned error: %v", err)
	}

	// same pair from the other side must resolve to the same conversation
	second, err := svc.CreateOrGet(context.Background(), bob, ids[0], nil)
	if err != nil {
		t.Fatalf("CreateOrGet returned error: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected one conversation per pair, got %s and %s", first.ID, second.ID)
	}
}

func TestConversationService_CreateOrGet_SelfRejected(t *testing.T) {
	users := newStubUserRepo()
	ids := seedUsers(t, users, "a@example.com")
	svc := NewConversationService(newStubConversationRepo(), &stubMessageRepo{}, users, &captureDispatcher{})

	alice := domain.Identity{ID: ids[0], Role: domain.RoleUser}
	if _, err := svc.CreateOrGet(context.Background(), alice, ids[0], nil); err == nil {
		t.Fatalf("expected error for self conversation")
	}
}

func TestConversationService_NonParticipantSeesNotFound(t *testing.T) {
	users := newStubUserRepo()
	ids := seedUsers(t, users, "a@example.com", "b@example.com", "c@example.com")
	svc := NewConversationService(newStubConversationRepo(), &stubMessageRepo{}, users, &captureDispatcher{})

	alice := domain.Identity{ID: ids[0], Role: domain.RoleUser}
	conversation, err := svc.CreateOrGet(context.Background(), alice, ids[1], nil)
	if err != nil {
		t.Fatalf("CreateOrGet returned error: %v", err)
	}

	outsider := domain.Identity{ID: ids[2], Role: domain.RoleUser}

	// a non-participant gets the same answer as for an unknown id
	_, err = svc.Messages(context.Background(), outsider, conversation.ID)
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 404 {
		t.Fatalf("expected 404 for non-participant, got %v", err)
	}
	_, err = svc.Messages(context.Background(), alice, "missing")
	var missingErr *apperrors.DomainError
	if !errors.As(err, &missingErr) || missingErr.HTTPStatus != 404 {
		t.Fatalf("expected 404 for unknown conversation, got %v", err)
	}
	if domainErr.Code != missingErr.Code {
		t.Fatalf("answers must be indistinguishable: %s vs %s", domainErr.Code, missingErr.Code)
	}

	if _, err := svc.Send(context.Background(), outsider, conversation.ID, "hi"); err == nil {
		t.Fatalf("expected send to be rejected for non-participant")
	}
}

func TestConversationService_Send_NotifiesOtherParticipants(t *testing.T) {
	users := newStubUserRepo()
	ids := seedUsers(t, users, "a@example.com", "b@example.com")
	dispatcher := &captureDispatcher{}
	svc := NewConversationService(newStubConversationRepo(), &stubMessageRepo{}, users, dispatcher)

	alice := domain.Identity{ID: ids[0], Role: domain.RoleUser}
	conversation, err := svc.CreateOrGet(context.Background(), alice, ids[1], nil)
	if err != nil {
		t.Fatalf("CreateOrGet returned error: %v", err)
	}

	msg, err := svc.Send(context.Background(), alice, conversation.ID, "is the loft still available?")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if msg.SenderID != ids[0] {
		t.Fatalf("sender id must come from the identity, got %s", msg.SenderID)
	}

	if len(dispatcher.published) != 1 || dispatcher.published[0].Type != events.EventMessageSent {
		t.Fatalf("expected one message_sent event, got %+v", dispatcher.published)
	}
	payload, ok := dispatcher.published[0].Payload.(events.MessageSentPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", dispatcher.published[0].Payload)
	}
	if len(payload.Recipients) != 1 || payload.Recipients[0] != ids[1] {
		t.Fatalf("expected the other participant as recipient, got %v", payload.Recipients)
	}
}

func TestConversationService_Send_BlankBody(t *testing.T) {
	users := newStubUserRepo()
	ids := seedUsers(t, users, "a@example.com", "b@example.com")
	svc := NewConversationService(newStubConversationRepo(), &stubMessageRepo{}, users, &captureDispatcher{})

	alice := domain.Identity{ID: ids[0], Role: domain.RoleUser}
	conversation, err := svc.CreateOrGet(context.Background(), alice, ids[1], nil)
	if err != nil {
		t.Fatalf("CreateOrGet returned error: %v", err)
	}
	if _, err := svc.Send(context.Background(), alice, conversation.ID, "   "); err == nil {
		t.Fatalf("expected error for blank body")
	}
}
