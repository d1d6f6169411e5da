package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPropertyCreated EventType = "property_created"
	EventReviewCreated   EventType = "review_created"
	EventMessageSent     EventType = "message_sent"
	EventPaymentRecorded EventType = "payment_recorded"
)

// Event represents a domain event emitted by services. ActorID is the
// authenticated identity that caused the event.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PropertyCreatedPayload payload.
type PropertyCreatedPayload struct {
	PropertyID string `json:"property_id"`
	AgentID    string `json:"agent_id"`
	Title      string `json:"title"`
}

// ReviewCreatedPayload payload.
type ReviewCreatedPayload struct {
	ReviewID   string `json:"review_id"`
	PropertyID string `json:"property_id"`
	AgentID    string `json:"agent_id"`
	Rating     int    `json:"rating"`
}

// MessageSentPayload payload. Recipients are the conversation participants
// other than the sender.
type MessageSentPayload struct {
	MessageID      string   `json:"message_id"`
	ConversationID string   `json:"conversation_id"`
	Recipients     []string `json:"recipients"`
	BodyPreview    string   `json:"body_preview"`
}

// PaymentRecordedPayload payload.
type PaymentRecordedPayload struct {
	PaymentID  string `json:"payment_id"`
	PropertyID string `json:"property_id"`
	AgentID    string `json:"agent_id"`
	Amount     int64  `json:"amount"`
	Reference  string `json:"reference"`
}
