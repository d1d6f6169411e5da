package dto

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

// CreateConversationRequest opens (or returns) a conversation with another
// user, optionally anchored to a listing.
type CreateConversationRequest struct {
	ParticipantID string  `json:"participant_id" validate:"required"`
	PropertyID    *string `json:"property_id"`
}

// SendMessageRequest payload for appending a message.
type SendMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

// ConversationResponse wire form of a conversation.
type ConversationResponse struct {
	ID           string    `json:"id"`
	PropertyID   *string   `json:"property_id,omitempty"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MessageResponse wire form of a message.
type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewConversationResponse maps a domain conversation.
func NewConversationResponse(conversation *domain.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:           conversation.ID,
		PropertyID:   conversation.PropertyID,
		Participants: conversation.Participants,
		CreatedAt:    conversation.CreatedAt,
		UpdatedAt:    conversation.UpdatedAt,
	}
}

// NewMessageResponse maps a domain message.
func NewMessageResponse(msg *domain.Message) MessageResponse {
	return MessageResponse{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Body:           msg.Body,
		CreatedAt:      msg.CreatedAt,
	}
}
