package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/formease/formease-server/internal/common"
	"github.com/formease/formease-server/internal/entity"
)

// CreateSubmissionRequest wraps parameters for storing a submission.
type CreateSubmissionRequest struct {
	UserID            *uuid.UUID
	FirstName         string
	Surname           string
	Address           string
	Postcode          string
	Email             string
	FavoriteTimeOfDay string
}

// UpdateSubmissionRequest wraps the editable fields of a stored submission.
// The account linkage is deliberately absent; editing a submission never
// moves it between users.
type UpdateSubmissionRequest struct {
	FirstName         string
	Surname           string
	Address           string
	Postcode          string
	Email             string
	FavoriteTimeOfDay string
}

type SubmissionRepository interface {
	Create(ctx context.Context, req *CreateSubmissionRequest) (*entity.Submission, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateSubmissionRequest) (*entity.Submission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Submission, error)
	ListAll(ctx context.Context) ([]*entity.Submission, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Submission, error)
}

type submissionRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewSubmissionRepository(pool *pgxpool.Pool, logger *slog.Logger) SubmissionRepository {
	return &submissionRepository{pool: pool, logger: logger}
}

const submissionColumns = `id, user_id, first_name, surname, address, postcode, email, favorite_time_of_day, created_at, updated_at`

func (r *submissionRepository) Create(ctx context.Context, req *CreateSubmissionRequest) (*entity.Submission, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO submissions (user_id, first_name, surname, address, postcode, email, favorite_time_of_day)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+submissionColumns,
		req.UserID, req.FirstName, req.Surname, req.Address, req.Postcode, req.Email, req.FavoriteTimeOfDay,
	)
	s, err := scanSubmission(row)
	if err != nil {
		r.logger.Error("failed to create submission", "email", req.Email, "error", err)
		return nil, err
	}
	return s, nil
}

func (r *submissionRepository) Update(ctx context.Context, id uuid.UUID, req *UpdateSubmissionRequest) (*entity.Submission, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE submissions
		SET first_name = $2, surname = $3, address = $4, postcode = $5, email = $6, favorite_time_of_day = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+submissionColumns,
		id, req.FirstName, req.Surname, req.Address, req.Postcode, req.Email, req.FavoriteTimeOfDay,
	)
	s, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewAppError(common.CodeNotFound, "submission not found", err)
		}
		r.logger.Error("failed to update submission", "submission_id", id, "error", err)
		return nil, err
	}
	return s, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Submission, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)
	s, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewAppError(common.CodeNotFound, "submission not found", err)
		}
		r.logger.Error("failed to get submission", "submission_id", id, "error", err)
		return nil, err
	}
	return s, nil
}

func (r *submissionRepository) ListAll(ctx context.Context) ([]*entity.Submission, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+submissionColumns+` FROM submissions ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("failed to list submissions", "error", err)
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

func (r *submissionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Submission, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		r.logger.Error("failed to list submissions for user", "user_id", userID, "error", err)
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

func scanSubmission(row pgx.Row) (*entity.Submission, error) {
	var s entity.Submission
	err := row.Scan(
		&s.ID, &s.UserID, &s.FirstName, &s.Surname, &s.Address,
		&s.Postcode, &s.Email, &s.FavoriteTimeOfDay, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectSubmissions(rows pgx.Rows) ([]*entity.Submission, error) {
	out := make([]*entity.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
