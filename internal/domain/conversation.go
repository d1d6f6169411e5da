package domain

import "time"

// Conversation groups messages between a fixed set of participants,
// optionally anchored to a property listing.
type Conversation struct {
	ID           string
	PropertyID   *string
	Participants []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasParticipant reports whether the user belongs to the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Message belongs to exactly one conversation and one sender. Ordering is by
// server-assigned CreatedAt, not arrival order.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Body           string
	CreatedAt      time.Time
}
