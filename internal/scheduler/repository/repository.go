// Package repository holds the idempotent recomputation queries run by
// the reconciliation worker. Each statement derives the stored value
// from the source rows, so replays and out-of-order deliveries
// converge on the same result.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository recomputes derived aggregates from their source tables.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// RecomputeAverageCost rederives a bootcamp's average tuition, rounded
// up to the nearest ten. Bootcamps without courses get NULL.
func (r *Repository) RecomputeAverageCost(ctx context.Context, bootcampID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE bootcamps
		SET average_cost = (
			SELECT CEIL(AVG(tuition) / 10) * 10
			FROM courses
			WHERE bootcamp_id = $1
		)
		WHERE id = $1
	`, bootcampID)
	if err != nil {
		return fmt.Errorf("recompute average cost: %w", err)
	}
	return nil
}

// RecomputeAverageRating rederives a bootcamp's average review rating.
// Bootcamps without reviews get NULL.
func (r *Repository) RecomputeAverageRating(ctx context.Context, bootcampID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE bootcamps
		SET average_rating = (
			SELECT AVG(rating)::numeric(4,2)
			FROM reviews
			WHERE bootcamp_id = $1
		)
		WHERE id = $1
	`, bootcampID)
	if err != nil {
		return fmt.Errorf("recompute average rating: %w", err)
	}
	return nil
}

// RecomputeCourseCount rederives a publisher's created-course counter
// from the courses they own.
func (r *Repository) RecomputeCourseCount(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET course_created_count = (
			SELECT COUNT(*)
			FROM courses
			WHERE owner_id = $1
		)
		WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("recompute course count: %w", err)
	}
	return nil
}

// ListBootcampIDs returns every bootcamp ID, for full sweeps.
func (r *Repository) ListBootcampIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM bootcamps`)
	if err != nil {
		return nil, fmt.Errorf("list bootcamp ids: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

// ListPublisherIDs returns every user who owns at least one course or
// carries a nonzero counter, for full sweeps.
func (r *Repository) ListPublisherIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id FROM users WHERE course_created_count > 0
		UNION
		SELECT DISTINCT owner_id FROM courses
	`)
	if err != nil {
		return nil, fmt.Errorf("list publisher ids: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}
