package scheduler

import (
	"context"
	"fmt"

	"autotradespot_backend/internal/email"
	"autotradespot_backend/platform/config"
	"autotradespot_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender email.Sender
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := &Worker{
		server: server,
		sender: sender,
		log:    log,
	}
	w.mux = w.routes()
	return w, nil
}

func (w *Worker) routes() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskListingReviewMail, w.handleListingReviewMail)
	mux.HandleFunc(TaskListingContactMail, w.handleListingContactMail)
	return mux
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleListingReviewMail(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseListingReviewMailPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if len(payload.To) == 0 {
		w.log.Warn("review mail skipped: no moderators configured", "listingId", payload.ListingID)
		return nil
	}

	if err := w.sender.SendListingReviewEmail(ctx, payload.To, payload.OwnerEmail, payload.ListingTitle, payload.ListingURL); err != nil {
		w.log.ExternalCallFailed("smtp", TaskListingReviewMail, "send failed", err)
		return err
	}
	w.log.Info("review mail sent", "listingId", payload.ListingID, "recipients", len(payload.To))
	return nil
}

func (w *Worker) handleListingContactMail(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseListingContactMailPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if err := w.sender.SendListingContactEmail(ctx, payload.ToEmail, payload.ReplyTo, payload.Subject, payload.Message, payload.ListingTitle, payload.ListingURL); err != nil {
		w.log.ExternalCallFailed("smtp", TaskListingContactMail, "send failed", err)
		return err
	}
	w.log.Info("contact mail sent", "listingId", payload.ListingID)
	return nil
}
