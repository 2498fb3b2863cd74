package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bootcamp_directory_backend/internal/adapters"
	"bootcamp_directory_backend/internal/auth"
	"bootcamp_directory_backend/internal/bootcamps"
	"bootcamp_directory_backend/internal/courses"
	"bootcamp_directory_backend/internal/email"
	"bootcamp_directory_backend/internal/events"
	"bootcamp_directory_backend/internal/geocoder"
	apphttp "bootcamp_directory_backend/internal/http"
	"bootcamp_directory_backend/internal/http/router"
	"bootcamp_directory_backend/internal/reviews"
	"bootcamp_directory_backend/internal/scheduler"
	"bootcamp_directory_backend/internal/storage"
	"bootcamp_directory_backend/internal/users"
	"bootcamp_directory_backend/migrations"
	"bootcamp_directory_backend/platform/config"
	"bootcamp_directory_backend/platform/db"
	"bootcamp_directory_backend/platform/logger"
	"bootcamp_directory_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Reconciliation task client; derived aggregates stay approximate
	// until the worker drains the queue.
	if closeReconcile := initReconcileScheduler(cfg, log, eventBus, pool); closeReconcile != nil {
		defer closeReconcile()
	}

	sender := email.NewSender(cfg)

	// Shared validator instance for dependency injection
	val := validator.New()

	geo := geocoder.NewService(cfg, log)

	photoStore, err := storage.NewDiskStore(cfg)
	if err != nil {
		log.Error("failed to initialize photo storage", "error", err)
		panic("failed to initialize photo storage: " + err.Error())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, eventBus, sender, val, log)
	bootcampsModule := bootcamps.NewModule(pool, cfg, eventBus, geo, photoStore, val, log)

	// Anti-corruption layer: cross-domain lookups go through adapters so
	// courses and reviews depend only on their own port interfaces.
	userProvider := adapters.NewAuthUserProvider(authModule.Service())
	courseBootcamps := adapters.NewCourseBootcampProvider(bootcampsModule.Service())
	reviewBootcamps := adapters.NewReviewBootcampProvider(bootcampsModule.Service())

	coursesModule := courses.NewModule(pool, courseBootcamps, userProvider, eventBus, val, log)
	reviewsModule := reviews.NewModule(pool, reviewBootcamps, eventBus, val, log)
	usersModule := users.NewModule(pool, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:    cfg,
		Logger:    log,
		Health:    db.NewPoolAdapter(pool),
		EventBus:  eventBus,
		UploadDir: photoStore.Dir(),
		Modules: []apphttp.Module{
			authModule,
			bootcampsModule,
			coursesModule,
			reviewsModule,
			usersModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initReconcileScheduler wires domain events onto the asynq queue.
// Without Redis, recomputes run in-process off the event bus instead.
func initReconcileScheduler(cfg config.SchedulerConfig, log *logger.Logger, bus events.Bus, pool *pgxpool.Pool) func() {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; reconciling derived data in-process")
		scheduler.NewSubscriber(scheduler.NewDirectReconciler(pool, log), log).Register(bus)
		return nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reconciliation client", "error", err)
		return nil
	}

	scheduler.NewSubscriber(client, log).Register(bus)

	return func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
