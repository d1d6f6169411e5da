package domain

import "time"

// PaymentStatus for recorded payments. Payments are recorded, never executed.
type PaymentStatus string

const PaymentStatusRecorded PaymentStatus = "RECORDED"

// Payment links a payer to a property with an opaque reference.
type Payment struct {
	ID         string
	PropertyID string
	PayerID    string
	Amount     int64
	Reference  string
	Status     PaymentStatus
	CreatedAt  time.Time
}
