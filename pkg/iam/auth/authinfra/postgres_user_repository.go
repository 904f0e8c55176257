package authinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Abraxas-365/hirely/pkg/iam/auth"
	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresUserRepository implements auth.UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, password_hash, full_name, role, created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, user *auth.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (:id, :email, :password_hash, :full_name, :role, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return auth.ErrEmailTaken().WithDetail("email", user.Email.String())
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email kernel.Email) (*auth.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email.String())
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id kernel.UserID) (*auth.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id.String())
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query string, arg string) (*auth.User, error) {
	var user auth.User
	if err := r.db.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
