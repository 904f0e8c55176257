package profilefieldinfra

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresFieldRepository implements profilefield.Repository using PostgreSQL
type PostgresFieldRepository struct {
	db *sqlx.DB
}

func NewPostgresFieldRepository(db *sqlx.DB) *PostgresFieldRepository {
	return &PostgresFieldRepository{db: db}
}

// List returns all fields ordered by order_index, then id
func (r *PostgresFieldRepository) List(ctx context.Context) ([]profilefield.FieldConfig, error) {
	query := `
		SELECT id, label, mandatory, order_index
		FROM profile_field_config
		ORDER BY order_index ASC, id ASC
	`

	var fields []profilefield.FieldConfig
	if err := r.db.SelectContext(ctx, &fields, query); err != nil {
		return nil, fmt.Errorf("failed to list profile fields: %w", err)
	}

	if fields == nil {
		fields = []profilefield.FieldConfig{}
	}
	return fields, nil
}

// Upsert inserts a field or replaces the existing definition with the same id
func (r *PostgresFieldRepository) Upsert(ctx context.Context, field profilefield.FieldConfig) error {
	query := `
		INSERT INTO profile_field_config (id, label, mandatory, order_index)
		VALUES (:id, :label, :mandatory, :order_index)
		ON CONFLICT (id) DO UPDATE SET
			label = EXCLUDED.label,
			mandatory = EXCLUDED.mandatory,
			order_index = EXCLUDED.order_index
	`

	if _, err := r.db.NamedExecContext(ctx, query, field); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation on order_index
			return profilefield.ErrOrderTaken(field.ID, field.OrderIndex)
		}
		return fmt.Errorf("failed to upsert profile field: %w", err)
	}
	return nil
}

// Delete removes a field by id
func (r *PostgresFieldRepository) Delete(ctx context.Context, id kernel.FieldID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profile_field_config WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete profile field: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return profilefield.ErrFieldNotFound().WithDetail("id", id.String())
	}
	return nil
}
