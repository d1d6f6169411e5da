package dto

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

// RecordAnalyticsRequest payload for usage events. The attributed user is
// always the authenticated identity.
type RecordAnalyticsRequest struct {
	Name       string `json:"name" validate:"required"`
	Properties string `json:"properties"`
}

// RecordPaymentRequest payload for recorded payments.
type RecordPaymentRequest struct {
	PropertyID string `json:"property_id" validate:"required"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
}

// NotificationResponse wire form of a notification.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentResponse wire form of a recorded payment.
type PaymentResponse struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	PayerID    string    `json:"payer_id"`
	Amount     int64     `json:"amount"`
	Reference  string    `json:"reference"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewNotificationResponse maps a domain notification.
func NewNotificationResponse(notification *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID,
		Type:      string(notification.Type),
		Payload:   notification.Payload,
		CreatedAt: notification.CreatedAt,
	}
}

// NewPaymentResponse maps a domain payment.
func NewPaymentResponse(payment *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         payment.ID,
		PropertyID: payment.PropertyID,
		PayerID:    payment.PayerID,
		Amount:     payment.Amount,
		Reference:  payment.Reference,
		Status:     string(payment.Status),
		CreatedAt:  payment.CreatedAt,
	}
}
