package repository

import (
	"context"
	"errors"
	"fmt"

	"bootcamp_directory_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const reviewColumns = `id, bootcamp_id, user_id, title, body, rating, created_at, updated_at`

// PgRepository implements Repository backed by Postgres.
type PgRepository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

var _ Repository = (*PgRepository)(nil)

func (r *PgRepository) Create(ctx context.Context, params CreateParams) (Review, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO reviews (bootcamp_id, user_id, title, body, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, reviewColumns),
		params.BootcampID, params.UserID, params.Title, params.Body, params.Rating,
	)

	review, err := scanReview(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Review{}, apperr.Conflict("user has already submitted a review for this bootcamp")
		}
		return Review{}, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (Review, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM reviews WHERE id = $1
	`, reviewColumns), id)

	review, err := scanReview(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Review{}, apperr.NotFound(fmt.Sprintf("review not found with id of %s", id))
	}
	return review, err
}

func (r *PgRepository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Review, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE reviews
		SET title      = COALESCE($2, title),
		    body       = COALESCE($3, body),
		    rating     = COALESCE($4, rating),
		    updated_at = now()
		WHERE id = $1
		RETURNING %s
	`, reviewColumns),
		id, params.Title, params.Body, params.Rating,
	)

	review, err := scanReview(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Review{}, apperr.NotFound(fmt.Sprintf("review not found with id of %s", id))
	}
	if err != nil {
		return Review{}, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(fmt.Sprintf("review not found with id of %s", id))
	}
	return nil
}

func scanReview(row pgx.Row) (Review, error) {
	var rv Review
	err := row.Scan(
		&rv.ID,
		&rv.BootcampID,
		&rv.UserID,
		&rv.Title,
		&rv.Body,
		&rv.Rating,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	return rv, err
}
