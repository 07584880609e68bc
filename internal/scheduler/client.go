package scheduler

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"autotradespot_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const mailMaxRetry = 5

type Client struct {
	client *asynq.Client
	queue  string
}

// MailQueue enqueues outgoing listing mail for the worker.
type MailQueue interface {
	EnqueueListingReviewMail(ctx context.Context, payload ListingReviewMailPayload) error
	EnqueueListingContactMail(ctx context.Context, payload ListingContactMailPayload) error
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) EnqueueListingReviewMail(ctx context.Context, payload ListingReviewMailPayload) error {
	task, err := NewListingReviewMailTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task, payload.EventID)
}

func (c *Client) EnqueueListingContactMail(ctx context.Context, payload ListingContactMailPayload) error {
	task, err := NewListingContactMailTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task, payload.EventID)
}

// enqueue keys the task by the originating event so a redelivered event
// does not send the same mail twice.
func (c *Client) enqueue(ctx context.Context, task *asynq.Task, eventID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	opts := []asynq.Option{asynq.Queue(c.queue), asynq.MaxRetry(mailMaxRetry)}
	if eventID != "" {
		opts = append(opts, asynq.TaskID(task.Type()+":"+eventID))
	}
	_, err := c.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

func queueName(cfg config.SchedulerConfig) string {
	if queue := cfg.GetAsynqQueue(); queue != "" {
		return queue
	}
	return "default"
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}

var _ MailQueue = (*Client)(nil)
