package scheduler

import (
	"context"
	"time"

	"bootcamp_directory_backend/internal/scheduler/repository"
	"bootcamp_directory_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const (
	defaultSweepInterval    = time.Hour
	defaultSweepConcurrency = 8
)

// ReconcileSweep periodically recomputes every derived aggregate,
// catching anything the event-driven path missed.
type ReconcileSweep struct {
	repo     *repository.Repository
	log      *logger.Logger
	interval time.Duration
}

func NewReconcileSweep(pool *pgxpool.Pool, log *logger.Logger, interval time.Duration) *ReconcileSweep {
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	return &ReconcileSweep{
		repo:     repository.New(pool),
		log:      log,
		interval: interval,
	}
}

func (s *ReconcileSweep) Run(ctx context.Context) {
	if s == nil || s.repo == nil {
		return
	}

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ReconcileSweep) sweep(ctx context.Context) {
	start := time.Now()

	bootcampIDs, err := s.repo.ListBootcampIDs(ctx)
	if err != nil {
		s.log.Warn("reconcile sweep failed to list bootcamps", "error", err)
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultSweepConcurrency)
	for _, id := range bootcampIDs {
		id := id
		g.Go(func() error {
			if err := s.repo.RecomputeAverageCost(gctx, id); err != nil {
				return err
			}
			return s.repo.RecomputeAverageRating(gctx, id)
		})
	}
	if err := g.Wait(); err != nil {
		s.log.ReconcileError("sweep.bootcamps", err)
		return
	}

	publisherIDs, err := s.repo.ListPublisherIDs(ctx)
	if err != nil {
		s.log.Warn("reconcile sweep failed to list publishers", "error", err)
		return
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(defaultSweepConcurrency)
	for _, id := range publisherIDs {
		id := id
		g.Go(func() error {
			return s.repo.RecomputeCourseCount(gctx, id)
		})
	}
	if err := g.Wait(); err != nil {
		s.log.ReconcileError("sweep.publishers", err)
		return
	}

	s.log.Info("reconcile sweep complete",
		"bootcamps", len(bootcampIDs),
		"publishers", len(publisherIDs),
		"durationMs", time.Since(start).Milliseconds(),
	)
}
