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

const courseColumns = `id, bootcamp_id, owner_id, title, description, weeks,
	tuition, minimum_skill, scholarship_available, created_at, updated_at`

// PgRepository implements Repository backed by Postgres.
type PgRepository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

var _ Repository = (*PgRepository)(nil)

func (r *PgRepository) Create(ctx context.Context, params CreateParams) (Course, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO courses (
			bootcamp_id, owner_id, title, description, weeks,
			tuition, minimum_skill, scholarship_available
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, courseColumns),
		params.BootcampID, params.OwnerID, params.Title, params.Description,
		params.Weeks, params.Tuition, params.MinimumSkill, params.ScholarshipAvailable,
	)

	course, err := scanCourse(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Course{}, apperr.Conflict(
				fmt.Sprintf("course titled %q already exists for this bootcamp", params.Title))
		}
		return Course{}, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (Course, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM courses WHERE id = $1
	`, courseColumns), id)

	course, err := scanCourse(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Course{}, apperr.NotFound(fmt.Sprintf("course not found with id of %s", id))
	}
	return course, err
}

func (r *PgRepository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Course, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE courses
		SET title                 = COALESCE($2, title),
		    description           = COALESCE($3, description),
		    weeks                 = COALESCE($4, weeks),
		    tuition               = COALESCE($5, tuition),
		    minimum_skill         = COALESCE($6, minimum_skill),
		    scholarship_available = COALESCE($7, scholarship_available),
		    updated_at            = now()
		WHERE id = $1
		RETURNING %s
	`, courseColumns),
		id, params.Title, params.Description, params.Weeks,
		params.Tuition, params.MinimumSkill, params.ScholarshipAvailable,
	)

	course, err := scanCourse(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Course{}, apperr.NotFound(fmt.Sprintf("course not found with id of %s", id))
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Course{}, apperr.Conflict("course title already taken for this bootcamp")
		}
		return Course{}, fmt.Errorf("update course: %w", err)
	}
	return course, nil
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(fmt.Sprintf("course not found with id of %s", id))
	}
	return nil
}

func scanCourse(row pgx.Row) (Course, error) {
	var c Course
	err := row.Scan(
		&c.ID,
		&c.BootcampID,
		&c.OwnerID,
		&c.Title,
		&c.Description,
		&c.Weeks,
		&c.Tuition,
		&c.MinimumSkill,
		&c.ScholarshipAvailable,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
