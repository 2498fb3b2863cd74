// Command seed imports the JSON fixtures under _data into the database,
// or wipes all rows. Intended for development environments only.
//
//	go run ./cmd/seed -i   import fixtures
//	go run ./cmd/seed -d   delete all data
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"bootcamp_directory_backend/internal/auth/password"
	"bootcamp_directory_backend/platform/config"
	"bootcamp_directory_backend/platform/db"
	"bootcamp_directory_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type seedUser struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Password string    `json:"password"`
}

type seedBootcamp struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"ownerId"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	Website        *string   `json:"website"`
	Phone          *string   `json:"phone"`
	Email          *string   `json:"email"`
	Address        string    `json:"address"`
	Careers        []string  `json:"careers"`
	Housing        bool      `json:"housing"`
	JobAssistance  bool      `json:"jobAssistance"`
	JobGuarantee   bool      `json:"jobGuarantee"`
	AcceptGi       bool      `json:"acceptGi"`
}

type seedCourse struct {
	ID                   uuid.UUID `json:"id"`
	BootcampID           uuid.UUID `json:"bootcampId"`
	OwnerID              uuid.UUID `json:"ownerId"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Weeks                int       `json:"weeks"`
	Tuition              float64   `json:"tuition"`
	MinimumSkill         string    `json:"minimumSkill"`
	ScholarshipAvailable bool      `json:"scholarshipAvailable"`
}

type seedReview struct {
	ID         uuid.UUID `json:"id"`
	BootcampID uuid.UUID `json:"bootcampId"`
	UserID     uuid.UUID `json:"userId"`
	Title      string    `json:"title"`
	Body       string    `json:"text"`
	Rating     int       `json:"rating"`
}

func main() {
	importData := flag.Bool("i", false, "import fixture data")
	deleteData := flag.Bool("d", false, "delete all data")
	dataDir := flag.String("data", "_data", "fixture directory")
	flag.Parse()

	if *importData == *deleteData {
		fmt.Fprintln(os.Stderr, "usage: seed -i | seed -d")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	ctx := context.Background()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *deleteData {
		if err := destroy(ctx, pool); err != nil {
			log.Error("failed to delete data", "error", err)
			os.Exit(1)
		}
		log.Info("all data deleted")
		return
	}

	if err := seed(ctx, pool, *dataDir); err != nil {
		log.Error("failed to import fixtures", "error", err)
		os.Exit(1)
	}
	log.Info("fixtures imported", "dir", *dataDir)
}

func destroy(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `TRUNCATE reviews, courses, bootcamps, users`)
	return err
}

func seed(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	var users []seedUser
	if err := readFixture(dir, "users.json", &users); err != nil {
		return err
	}
	for _, u := range users {
		hash, err := password.Hash(u.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		if _, err := pool.Exec(ctx, `
			INSERT INTO users (id, name, email, role, password_hash)
			VALUES ($1, $2, $3, $4, $5)
		`, u.ID, u.Name, u.Email, u.Role, hash); err != nil {
			return fmt.Errorf("insert user %s: %w", u.Email, err)
		}
	}

	var bootcamps []seedBootcamp
	if err := readFixture(dir, "bootcamps.json", &bootcamps); err != nil {
		return err
	}
	for _, b := range bootcamps {
		if _, err := pool.Exec(ctx, `
			INSERT INTO bootcamps (
				id, owner_id, name, slug, description, website, phone, email,
				address, careers, housing, job_assistance, job_guarantee, accept_gi
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`, b.ID, b.OwnerID, b.Name, b.Slug, b.Description, b.Website, b.Phone,
			b.Email, b.Address, b.Careers, b.Housing, b.JobAssistance,
			b.JobGuarantee, b.AcceptGi); err != nil {
			return fmt.Errorf("insert bootcamp %s: %w", b.Name, err)
		}
	}

	var courses []seedCourse
	if err := readFixture(dir, "courses.json", &courses); err != nil {
		return err
	}
	for _, c := range courses {
		if _, err := pool.Exec(ctx, `
			INSERT INTO courses (
				id, bootcamp_id, owner_id, title, description, weeks,
				tuition, minimum_skill, scholarship_available
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, c.ID, c.BootcampID, c.OwnerID, c.Title, c.Description, c.Weeks,
			c.Tuition, c.MinimumSkill, c.ScholarshipAvailable); err != nil {
			return fmt.Errorf("insert course %s: %w", c.Title, err)
		}
	}

	var reviews []seedReview
	if err := readFixture(dir, "reviews.json", &reviews); err != nil {
		return err
	}
	for _, r := range reviews {
		if _, err := pool.Exec(ctx, `
			INSERT INTO reviews (id, bootcamp_id, user_id, title, body, rating)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, r.ID, r.BootcampID, r.UserID, r.Title, r.Body, r.Rating); err != nil {
			return fmt.Errorf("insert review %s: %w", r.Title, err)
		}
	}

	// Counters and averages are normally event-driven; fixtures bypass
	// the services, so derive them directly.
	if _, err := pool.Exec(ctx, `
		UPDATE users u
		SET course_created_count = (SELECT COUNT(*) FROM courses WHERE owner_id = u.id)
	`); err != nil {
		return fmt.Errorf("reconcile course counts: %w", err)
	}
	if _, err := pool.Exec(ctx, `
		UPDATE bootcamps b
		SET average_cost   = (SELECT CEIL(AVG(tuition) / 10) * 10 FROM courses WHERE bootcamp_id = b.id),
		    average_rating = (SELECT AVG(rating)::numeric(4,2) FROM reviews WHERE bootcamp_id = b.id)
	`); err != nil {
		return fmt.Errorf("reconcile bootcamp aggregates: %w", err)
	}

	return nil
}

func readFixture(dir, name string, out any) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
