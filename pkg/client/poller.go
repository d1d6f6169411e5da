package client

import (
	"context"
	"sort"
	"time"
)

// Poller runs a fetch at a fixed interval until its context is cancelled.
// Start it when a panel opens, cancel the context when it closes; the ticker
// is always released on return.
type Poller struct {
	interval time.Duration
	poll     func(context.Context) error
}

// NewPoller builds a poller around a fetch function.
func NewPoller(interval time.Duration, poll func(context.Context) error) *Poller {
	return &Poller{interval: interval, poll: poll}
}

// Run polls once immediately, then on every tick, and returns the context
// error once cancelled. Fetch errors other than ErrSessionExpired are
// swallowed so a transient failure does not kill the loop; an expired
// session stops it, since further polls cannot succeed.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.poll(ctx); err == ErrSessionExpired {
		return err
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.poll(ctx); err == ErrSessionExpired {
				return err
			}
		}
	}
}

// PollConversations delivers the conversation list on every interval.
func (c *Client) PollConversations(interval time.Duration, onUpdate func([]Conversation)) *Poller {
	return NewPoller(interval, func(ctx context.Context) error {
		conversations, err := c.Conversations(ctx)
		if err != nil {
			return err
		}
		onUpdate(conversations)
		return nil
	})
}

// PollMessages delivers a conversation's history on every interval. Messages
// are re-sorted by server CreatedAt before delivery: concurrent polls may
// return out of order, and display order follows creation time, not arrival.
func (c *Client) PollMessages(conversationID string, interval time.Duration, onUpdate func([]Message)) *Poller {
	return NewPoller(interval, func(ctx context.Context) error {
		messages, err := c.Messages(ctx, conversationID)
		if err != nil {
			return err
		}
		SortMessages(messages)
		onUpdate(messages)
		return nil
	})
}

// SortMessages orders messages by creation time, oldest first, with id as a
// tiebreaker for equal timestamps.
func SortMessages(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
}
