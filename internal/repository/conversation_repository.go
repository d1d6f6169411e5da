package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// ConversationRepository manages conversations and their participant sets.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *domain.Conversation) error
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
	FindByParticipants(ctx context.Context, participants []string, propertyID *string) (*domain.Conversation, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error)
	Touch(ctx context.Context, id string) error
}

type conversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository builds repository.
func NewConversationRepository(pool *pgxpool.Pool) ConversationRepository {
	return &conversationRepository{pool: pool}
}

func (r *conversationRepository) Create(ctx context.Context, conversation *domain.Conversation) error {
	const query = `
        INSERT INTO conversations (property_id, participants)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		conversation.PropertyID,
		conversation.Participants,
	).Scan(&conversation.ID, &conversation.CreatedAt, &conversation.UpdatedAt)
}

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	const query = `
        SELECT id, property_id, participants, created_at, updated_at
        FROM conversations WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

// FindByParticipants locates the conversation holding exactly the given
// participant set for the given property, if one exists.
func (r *conversationRepository) FindByParticipants(ctx context.Context, participants []string, propertyID *string) (*domain.Conversation, error) {
	const query = `
        SELECT id, property_id, participants, created_at, updated_at
        FROM conversations
        WHERE participants @> $1 AND participants <@ $1
          AND property_id IS NOT DISTINCT FROM $2`
	return r.fetchSingle(ctx, query, participants, propertyID)
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
        SELECT id, property_id, participants, created_at, updated_at
        FROM conversations WHERE $1 = ANY(participants)
        ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Conversation
	for rows.Next() {
		var conversation domain.Conversation
		if err := rows.Scan(
			&conversation.ID,
			&conversation.PropertyID,
			&conversation.Participants,
			&conversation.CreatedAt,
			&conversation.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, conversation)
	}
	return result, rows.Err()
}

// Touch bumps updated_at so conversation lists order by latest activity.
func (r *conversationRepository) Touch(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE conversations SET updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *conversationRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Conversation, error) {
	var conversation domain.Conversation
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&conversation.ID,
		&conversation.PropertyID,
		&conversation.Participants,
		&conversation.CreatedAt,
		&conversation.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &conversation, nil
}
