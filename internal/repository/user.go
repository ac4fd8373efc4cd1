package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/formease/formease-server/internal/common"
	"github.com/formease/formease-server/internal/entity"
)

type UserRepository interface {
	// UpsertByEmail returns the account for an email, creating it if needed.
	// Credentials live with the external identity provider, not here.
	UpsertByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type userRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewUserRepository(pool *pgxpool.Pool, logger *slog.Logger) UserRepository {
	return &userRepository{pool: pool, logger: logger}
}

func (r *userRepository) UpsertByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email)
		VALUES ($1)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, created_at`, email)

	var u entity.User
	if err := row.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
		r.logger.Error("failed to upsert user", "email", email, "error", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, email, created_at FROM users WHERE id = $1`, id)
	var u entity.User
	if err := row.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewAppError(common.CodeNotFound, "user not found", err)
		}
		r.logger.Error("failed to get user", "user_id", id, "error", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, email, created_at FROM users ORDER BY created_at`)
	if err != nil {
		r.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.User, 0)
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check user existence", "user_id", id, "error", err)
		return false, err
	}
	return exists, nil
}
