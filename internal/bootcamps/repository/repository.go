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

const bootcampColumns = `id, owner_id, name, slug, description, website, phone, email,
	address, formatted_address, street, city, state, zipcode, country,
	latitude, longitude, careers, housing, job_assistance, job_guarantee,
	accept_gi, average_rating, average_cost, photo, created_at, updated_at`

// PgRepository implements Repository backed by Postgres.
type PgRepository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

var _ Repository = (*PgRepository)(nil)

func (r *PgRepository) Create(ctx context.Context, params CreateParams) (Bootcamp, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO bootcamps (
			owner_id, name, slug, description, website, phone, email, address,
			formatted_address, street, city, state, zipcode, country, latitude, longitude,
			careers, housing, job_assistance, job_guarantee, accept_gi
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21)
		RETURNING %s
	`, bootcampColumns),
		params.OwnerID, params.Name, params.Slug, params.Description,
		params.Website, params.Phone, params.Email, params.Address,
		params.Geo.FormattedAddress, params.Geo.Street, params.Geo.City,
		params.Geo.State, params.Geo.Zipcode, params.Geo.Country,
		params.Geo.Latitude, params.Geo.Longitude,
		params.Careers, params.Housing, params.JobAssistance,
		params.JobGuarantee, params.AcceptGi,
	)

	b, err := scanBootcamp(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Bootcamp{}, apperr.Conflict(fmt.Sprintf("bootcamp named %q already exists", params.Name))
		}
		return Bootcamp{}, fmt.Errorf("create bootcamp: %w", err)
	}
	return b, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (Bootcamp, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM bootcamps WHERE id = $1
	`, bootcampColumns), id)

	b, err := scanBootcamp(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Bootcamp{}, apperr.NotFound(fmt.Sprintf("bootcamp not found with id of %s", id))
	}
	return b, err
}

func (r *PgRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM bootcamps WHERE owner_id = $1
	`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bootcamps by owner: %w", err)
	}
	return count, nil
}

func (r *PgRepository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Bootcamp, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE bootcamps
		SET name           = COALESCE($2, name),
		    slug           = COALESCE($3, slug),
		    description    = COALESCE($4, description),
		    website        = COALESCE($5, website),
		    phone          = COALESCE($6, phone),
		    email          = COALESCE($7, email),
		    careers        = COALESCE($8, careers),
		    housing        = COALESCE($9, housing),
		    job_assistance = COALESCE($10, job_assistance),
		    job_guarantee  = COALESCE($11, job_guarantee),
		    accept_gi      = COALESCE($12, accept_gi),
		    updated_at     = now()
		WHERE id = $1
		RETURNING %s
	`, bootcampColumns),
		id, params.Name, params.Slug, params.Description, params.Website,
		params.Phone, params.Email, params.Careers, params.Housing,
		params.JobAssistance, params.JobGuarantee, params.AcceptGi,
	)

	b, err := scanBootcamp(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Bootcamp{}, apperr.NotFound(fmt.Sprintf("bootcamp not found with id of %s", id))
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Bootcamp{}, apperr.Conflict("bootcamp name already taken")
		}
		return Bootcamp{}, fmt.Errorf("update bootcamp: %w", err)
	}
	return b, nil
}

func (r *PgRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, filename string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE bootcamps SET photo = $2, updated_at = now() WHERE id = $1
	`, id, filename)
	if err != nil {
		return fmt.Errorf("update bootcamp photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(fmt.Sprintf("bootcamp not found with id of %s", id))
	}
	return nil
}

func (r *PgRepository) DeleteCascade(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin delete bootcamp: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE bootcamp_id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete bootcamp reviews: %w", err)
	}

	rows, err := tx.Query(ctx, `
		DELETE FROM courses WHERE bootcamp_id = $1 RETURNING owner_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("delete bootcamp courses: %w", err)
	}
	ownerIDs, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("collect course owners: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM bootcamps WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("delete bootcamp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("bootcamp not found with id of %s", id))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit delete bootcamp: %w", err)
	}
	return dedupe(ownerIDs), nil
}

func (r *PgRepository) WithinRadius(ctx context.Context, lat, lon, radians float64) ([]Bootcamp, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM bootcamps
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		  AND acos(
		        sin(radians($1)) * sin(radians(latitude)) +
		        cos(radians($1)) * cos(radians(latitude)) * cos(radians(longitude) - radians($2))
		      ) <= $3
		ORDER BY name
	`, bootcampColumns), lat, lon, radians)
	if err != nil {
		return nil, fmt.Errorf("bootcamps within radius: %w", err)
	}
	defer rows.Close()

	var result []Bootcamp
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bootcamp: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func scanBootcamp(row pgx.Row) (Bootcamp, error) {
	var b Bootcamp
	err := row.Scan(
		&b.ID,
		&b.OwnerID,
		&b.Name,
		&b.Slug,
		&b.Description,
		&b.Website,
		&b.Phone,
		&b.Email,
		&b.Address,
		&b.FormattedAddress,
		&b.Street,
		&b.City,
		&b.State,
		&b.Zipcode,
		&b.Country,
		&b.Latitude,
		&b.Longitude,
		&b.Careers,
		&b.Housing,
		&b.JobAssistance,
		&b.JobGuarantee,
		&b.AcceptGi,
		&b.AverageRating,
		&b.AverageCost,
		&b.Photo,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
