package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// PaymentService records payments against listings. Nothing is charged or
// settled here; a payment is a bookkeeping row with an opaque reference.
type PaymentService struct {
	payments   repository.PaymentRepository
	properties repository.PropertyRepository
	dispatcher events.Dispatcher
}

// NewPaymentService constructs the service.
func NewPaymentService(payments repository.PaymentRepository, properties repository.PropertyRepository, dispatcher events.Dispatcher) *PaymentService {
	return &PaymentService{payments: payments, properties: properties, dispatcher: dispatcher}
}

// Record stores a payment by the authenticated identity for a listing.
func (s *PaymentService) Record(ctx context.Context, identity domain.Identity, propertyID string, amount int64) (*domain.Payment, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("property", nil)
		}
		return nil, err
	}

	payment := &domain.Payment{
		PropertyID: property.ID,
		PayerID:    identity.ID,
		Amount:     amount,
		Reference:  uuid.NewString(),
		Status:     domain.PaymentStatusRecorded,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventPaymentRecorded,
		ActorID: identity.ID,
		Payload: events.PaymentRecordedPayload{
			PaymentID:  payment.ID,
			PropertyID: property.ID,
			AgentID:    property.AgentID,
			Amount:     payment.Amount,
			Reference:  payment.Reference,
		},
	})
	return payment, nil
}

// ListForUser returns the caller's recorded payments.
func (s *PaymentService) ListForUser(ctx context.Context, identity domain.Identity, limit, offset int) ([]domain.Payment, error) {
	payments, err := s.payments.ListByPayer(ctx, identity.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}
