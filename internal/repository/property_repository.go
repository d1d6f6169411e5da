package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// PropertyFilter captures public search parameters.
type PropertyFilter struct {
	AgentID  *string
	City     *string
	Statuses []domain.PropertyStatus
	PriceMin *int64
	PriceMax *int64
	Limit    int
	Offset   int
}

// PropertyRepository encapsulates listing persistence.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	ListWithFilter(ctx context.Context, filter PropertyFilter) ([]domain.Property, error)
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository instantiates repository.
func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool}
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	location, images, features, err := encodePayloads(property)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO properties (agent_id, title, description, price, status, location, images, features)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		property.AgentID,
		property.Title,
		property.Description,
		property.Price,
		property.Status,
		location,
		images,
		features,
	).Scan(&property.ID, &property.CreatedAt, &property.UpdatedAt)
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	location, images, features, err := encodePayloads(property)
	if err != nil {
		return err
	}

	const query = `
        UPDATE properties SET title=$1, description=$2, price=$3, status=$4,
            location=$5, images=$6, features=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		property.Title,
		property.Description,
		property.Price,
		property.Status,
		location,
		images,
		features,
		property.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	const query = `
        SELECT id, agent_id, title, description, price, status, location, images, features,
               created_at, updated_at
        FROM properties WHERE id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	property, err := scanProperty(row)
	if err != nil {
		return nil, err
	}
	return property, nil
}

func (r *propertyRepository) ListWithFilter(ctx context.Context, filter PropertyFilter) ([]domain.Property, error) {
	base := `SELECT id, agent_id, title, description, price, status, location, images, features,
                    created_at, updated_at
             FROM properties`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AgentID != nil {
		args = append(args, *filter.AgentID)
		clauses = append(clauses, fmt.Sprintf("agent_id=$%d", len(args)))
	}
	if filter.City != nil && strings.TrimSpace(*filter.City) != "" {
		args = append(args, strings.TrimSpace(*filter.City))
		clauses = append(clauses, fmt.Sprintf("location::jsonb->>'city' = $%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.PriceMin != nil {
		args = append(args, *filter.PriceMin)
		clauses = append(clauses, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.PriceMax != nil {
		args = append(args, *filter.PriceMax)
		clauses = append(clauses, fmt.Sprintf("price <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *property)
	}
	return result, rows.Err()
}

func encodePayloads(property *domain.Property) (location, images, features string, err error) {
	if location, err = property.EncodeLocation(); err != nil {
		return "", "", "", err
	}
	if images, err = property.EncodeImages(); err != nil {
		return "", "", "", err
	}
	if features, err = property.EncodeFeatures(); err != nil {
		return "", "", "", err
	}
	return location, images, features, nil
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var property domain.Property
	var location, images, features string
	if err := row.Scan(
		&property.ID,
		&property.AgentID,
		&property.Title,
		&property.Description,
		&property.Price,
		&property.Status,
		&location,
		&images,
		&features,
		&property.CreatedAt,
		&property.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := property.DecodePayloads(location, images, features); err != nil {
		return nil, err
	}
	return &property, nil
}
