// Package scheduler moves derived-data maintenance off the request
// path. Domain events are turned into asynq tasks; the worker executes
// idempotent recomputations against Postgres.
package scheduler

import (
	"context"
	"fmt"

	"bootcamp_directory_backend/platform/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues reconciliation tasks.
type Client struct {
	client *asynq.Client
	queue  string
}

// Enqueuer is the slice of Client the event subscriber needs.
type Enqueuer interface {
	EnqueueRecomputeAverageCost(ctx context.Context, bootcampID uuid.UUID) error
	EnqueueRecomputeAverageRating(ctx context.Context, bootcampID uuid.UUID) error
	EnqueueRecomputeCourseCount(ctx context.Context, userID uuid.UUID) error
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
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

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) EnqueueRecomputeAverageCost(ctx context.Context, bootcampID uuid.UUID) error {
	task, err := NewRecomputeAverageCostTask(RecomputeBootcampPayload{BootcampID: bootcampID.String()})
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task)
}

func (c *Client) EnqueueRecomputeAverageRating(ctx context.Context, bootcampID uuid.UUID) error {
	task, err := NewRecomputeAverageRatingTask(RecomputeBootcampPayload{BootcampID: bootcampID.String()})
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task)
}

func (c *Client) EnqueueRecomputeCourseCount(ctx context.Context, userID uuid.UUID) error {
	task, err := NewRecomputeCourseCountTask(RecomputeCourseCountPayload{UserID: userID.String()})
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task)
}

func (c *Client) enqueue(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.client == nil {
		return nil
	}
	_, err := c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}

var _ Enqueuer = (*Client)(nil)
