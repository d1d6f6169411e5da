package domain

import "time"

// NotificationType enumerates the events users are notified about.
type NotificationType string

const (
	NotificationReviewReceived  NotificationType = "REVIEW_RECEIVED"
	NotificationMessageReceived NotificationType = "MESSAGE_RECEIVED"
	NotificationPaymentRecorded NotificationType = "PAYMENT_RECORDED"
)

// Notification is an append-only record attributed to a user.
type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Payload   string
	CreatedAt time.Time
}
