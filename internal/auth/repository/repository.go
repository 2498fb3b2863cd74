package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bootcamp_directory_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const userColumns = `id, name, email, role, password_hash,
	reset_password_token, reset_password_expire,
	course_created_count, course_created_limit,
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
	`, userColumns), params.Name, params.Email, params.Role, params.PasswordHash)

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

func (r *PgRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM users WHERE email = $1
	`, userColumns), email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound("user not found")
	}
	return user, err
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

func (r *PgRepository) UpdateDetails(ctx context.Context, id uuid.UUID, params UpdateDetailsParams) (User, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE users
		SET name       = COALESCE($2, name),
		    email      = COALESCE($3, email),
		    updated_at = now()
		WHERE id = $1
		RETURNING %s
	`, userColumns), id, params.Name, params.Email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound(fmt.Sprintf("user not found with id of %s", id))
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, apperr.Conflict("email already registered")
		}
		return User{}, fmt.Errorf("update user details: %w", err)
	}
	return user, nil
}

func (r *PgRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1
	`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(fmt.Sprintf("user not found with id of %s", id))
	}
	return nil
}

func (r *PgRepository) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expire time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET reset_password_token = $2, reset_password_expire = $3, updated_at = now()
		WHERE id = $1
	`, id, tokenHash, expire)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

func (r *PgRepository) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (User, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM users
		WHERE reset_password_token = $1 AND reset_password_expire > $2
	`, userColumns), tokenHash, now)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.BadRequest("invalid token")
	}
	return user, err
}

func (r *PgRepository) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET reset_password_token = NULL, reset_password_expire = NULL, updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("clear reset token: %w", err)
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
		&u.PasswordHash,
		&u.ResetPasswordToken,
		&u.ResetPasswordExpire,
		&u.CourseCreatedCount,
		&u.CourseCreatedLimit,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}
