package scheduler

import (
	"context"
	"errors"
	"testing"

	"autotradespot_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type recordingSender struct {
	reviews  [][]string
	contacts []string
	replyTo  []string
	err      error
}

func (s *recordingSender) SendListingReviewEmail(_ context.Context, to []string, _, _, _ string) error {
	s.reviews = append(s.reviews, to)
	return s.err
}

func (s *recordingSender) SendListingContactEmail(_ context.Context, to, replyTo, _, _, _, _ string) error {
	s.contacts = append(s.contacts, to)
	s.replyTo = append(s.replyTo, replyTo)
	return s.err
}

func newTestWorker(sender *recordingSender) *Worker {
	return &Worker{sender: sender, log: logger.New("test")}
}

func TestContactMailTaskReachesSender(t *testing.T) {
	sender := &recordingSender{}
	w := newTestWorker(sender)
	task, err := NewListingContactMailTask(ListingContactMailPayload{ToEmail: "seller@example.com", ReplyTo: "buyer@example.com", Subject: "Still available?"})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}

	if err := w.routes().ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.contacts) != 1 || sender.contacts[0] != "seller@example.com" || sender.replyTo[0] != "buyer@example.com" {
		t.Fatalf("unexpected sends %v %v", sender.contacts, sender.replyTo)
	}
}

func TestReviewMailWithoutModeratorsIsSkipped(t *testing.T) {
	sender := &recordingSender{}
	w := newTestWorker(sender)
	task, _ := NewListingReviewMailTask(ListingReviewMailPayload{ListingID: "l-1"})

	if err := w.handleListingReviewMail(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.reviews) != 0 {
		t.Fatalf("expected no mail without recipients")
	}
}

func TestSendFailureIsRetried(t *testing.T) {
	sender := &recordingSender{err: errors.New("connection refused")}
	w := newTestWorker(sender)
	task, _ := NewListingReviewMailTask(ListingReviewMailPayload{To: []string{"mod@example.com"}})

	err := w.handleListingReviewMail(context.Background(), task)
	if err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected retryable error, got %v", err)
	}
}

func TestMalformedPayloadSkipsRetry(t *testing.T) {
	w := newTestWorker(&recordingSender{})
	err := w.handleListingContactMail(context.Background(), asynq.NewTask(TaskListingContactMail, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected skip retry, got %v", err)
	}
}
