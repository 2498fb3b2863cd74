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

const userColumns = `id, name, email, role, course_created_count, course_created_limit,
	created_at, updated_at`

// PgRepository implements Repository backed by Postgres.
type PgRepository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

var _ Repository = (*PgRepository)(nil)

func (r *PgRepository) Create(ctx context.Context, params CreateParams) (User, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO users (name, email, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, userColumns),
		params.Name, params.Email, params.Role, params.PasswordHash,
	)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, apperr.Conflict("email already registered")
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM users WHERE id = $1
	`, userColumns), id)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound(fmt.Sprintf("user not found with id of %s", id))
	}
	return user, err
}

func (r *PgRepository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (User, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE users
		SET name                 = COALESCE($2, name),
		    email                = COALESCE($3, email),
		    role                 = COALESCE($4, role),
		    course_created_limit = COALESCE($5, course_created_limit),
		    updated_at           = now()
		WHERE id = $1
		RETURNING %s
	`, userColumns),
		id, params.Name, params.Email, params.Role, params.CourseCreatedLimit,
	)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound(fmt.Sprintf("user not found with id of %s", id))
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, apperr.Conflict("email already registered")
		}
		return User{}, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(fmt.Sprintf("user not found with id of %s", id))
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.CourseCreatedCount,
		&u.CourseCreatedLimit,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}
