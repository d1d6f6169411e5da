package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

const messagePreviewLen = 80

// ConversationService coordinates participant-scoped messaging. Every access
// is gated on membership: a caller outside the participant set gets the same
// not-found answer as for a conversation that does not exist.
type ConversationService struct {
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	users         repository.UserRepository
	dispatcher    events.Dispatcher
}

// NewConversationService constructs the service.
func NewConversationService(
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	users repository.UserRepository,
	dispatcher events.Dispatcher,
) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		messages:      messages,
		users:         users,
		dispatcher:    dispatcher,
	}
}

// CreateOrGet returns the conversation between the caller and the other
// participant for the optional property, creating it on first contact.
func (s *ConversationService) CreateOrGet(ctx context.Context, identity domain.Identity, otherUserID string, propertyID *string) (*domain.Conversation, error) {
	if otherUserID == "" || otherUserID == identity.ID {
		return nil, apperrors.NewValidationError("participant must be another user", nil)
	}
	if _, err := s.users.GetByID(ctx, otherUserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	participants := []string{identity.ID, otherUserID}
	sort.Strings(participants)

	existing, err := s.conversations.FindByParticipants(ctx, participants, propertyID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	conversation := &domain.Conversation{
		PropertyID:   propertyID,
		Participants: participants,
	}
	if err := s.conversations.Create(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// ListForUser returns the caller's conversations ordered by latest activity.
func (s *ConversationService) ListForUser(ctx context.Context, identity domain.Identity, limit, offset int) ([]domain.Conversation, error) {
	conversations, err := s.conversations.ListByUser(ctx, identity.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	if conversations == nil {
		conversations = []domain.Conversation{}
	}
	return conversations, nil
}

// Messages returns the ordered message history, provided the caller is a
// participant.
func (s *ConversationService) Messages(ctx context.Context, identity domain.Identity, conversationID string) ([]domain.Message, error) {
	if _, err := s.memberConversation(ctx, identity, conversationID); err != nil {
		return nil, err
	}
	messages, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// Send appends a message from the authenticated identity to the conversation.
func (s *ConversationService) Send(ctx context.Context, identity domain.Identity, conversationID, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}

	conversation, err := s.memberConversation(ctx, identity, conversationID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conversation.ID,
		SenderID:       identity.ID,
		Body:           body,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.conversations.Touch(ctx, conversation.ID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	recipients := make([]string, 0, len(conversation.Participants))
	for _, participant := range conversation.Participants {
		if participant != identity.ID {
			recipients = append(recipients, participant)
		}
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventMessageSent,
		ActorID: identity.ID,
		Payload: events.MessageSentPayload{
			MessageID:      msg.ID,
			ConversationID: conversation.ID,
			Recipients:     recipients,
			BodyPreview:    preview(msg.Body),
		},
	})
	return msg, nil
}

// memberConversation loads a conversation and enforces membership. Both an
// unknown id and a non-participant caller map to not-found so existence is
// never disclosed.
func (s *ConversationService) memberConversation(ctx context.Context, identity domain.Identity, conversationID string) (*domain.Conversation, error) {
	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("conversation", nil)
		}
		return nil, err
	}
	if !conversation.HasParticipant(identity.ID) {
		return nil, apperrors.NewNotFound("conversation", nil)
	}
	return conversation, nil
}

func preview(body string) string {
	if len(body) <= messagePreviewLen {
		return body
	}
	return body[:messagePreviewLen]
}
