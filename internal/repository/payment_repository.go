package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// PaymentRepository manages recorded payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByPayer(ctx context.Context, payerID string, limit, offset int) ([]domain.Payment, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository builds repository.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	const query = `
        INSERT INTO payments (property_id, payer_id, amount, reference, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		payment.PropertyID,
		payment.PayerID,
		payment.Amount,
		payment.Reference,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt)
}

func (r *paymentRepository) ListByPayer(ctx context.Context, payerID string, limit, offset int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
        SELECT id, property_id, payer_id, amount, reference, status, created_at
        FROM payments WHERE payer_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, payerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.PropertyID,
			&payment.PayerID,
			&payment.Amount,
			&payment.Reference,
			&payment.Status,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, payment)
	}
	return result, rows.Err()
}
