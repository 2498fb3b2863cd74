package scheduler

import (
	"context"
	"fmt"

	"bootcamp_directory_backend/internal/scheduler/repository"
	"bootcamp_directory_backend/platform/config"
	"bootcamp_directory_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker consumes reconciliation tasks and recomputes derived data.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   *repository.Repository
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repository.New(pool),
		log:    log,
	}

	mux.HandleFunc(TaskRecomputeAverageCost, w.handleRecomputeAverageCost)
	mux.HandleFunc(TaskRecomputeAverageRating, w.handleRecomputeAverageRating)
	mux.HandleFunc(TaskRecomputeCourseCount, w.handleRecomputeCourseCount)

	return w, nil
}

// Run serves tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("reconciliation worker stopped", "error", err)
	}
}

func (w *Worker) handleRecomputeAverageCost(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseRecomputeBootcampPayload(task)
	if err != nil {
		return err
	}

	bootcampID, err := uuid.Parse(payload.BootcampID)
	if err != nil {
		return err
	}

	if err := w.repo.RecomputeAverageCost(ctx, bootcampID); err != nil {
		w.log.ReconcileError(TaskRecomputeAverageCost, err)
		return err
	}
	return nil
}

func (w *Worker) handleRecomputeAverageRating(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseRecomputeBootcampPayload(task)
	if err != nil {
		return err
	}

	bootcampID, err := uuid.Parse(payload.BootcampID)
	if err != nil {
		return err
	}

	if err := w.repo.RecomputeAverageRating(ctx, bootcampID); err != nil {
		w.log.ReconcileError(TaskRecomputeAverageRating, err)
		return err
	}
	return nil
}

func (w *Worker) handleRecomputeCourseCount(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseRecomputeCourseCountPayload(task)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return err
	}

	if err := w.repo.RecomputeCourseCount(ctx, userID); err != nil {
		w.log.ReconcileError(TaskRecomputeCourseCount, err)
		return err
	}
	return nil
}
