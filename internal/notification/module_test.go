package notification

import (
	"context"
	"testing"

	"autotradespot_backend/internal/events"
	"autotradespot_backend/internal/scheduler"
	"autotradespot_backend/platform/logger"

	"github.com/google/uuid"
)

type testNotificationConfig struct {
	moderators []string
}

func (testNotificationConfig) GetAppBaseURL() string           { return "https://app.example.com/" }
func (c testNotificationConfig) GetModerationEmails() []string { return c.moderators }

type testSender struct {
	reviewCalls  int
	contactCalls int
	replyTo      string
}

func (s *testSender) SendListingReviewEmail(context.Context, []string, string, string, string) error {
	s.reviewCalls++
	return nil
}

func (s *testSender) SendListingContactEmail(_ context.Context, _, replyTo, _, _, _, _ string) error {
	s.contactCalls++
	s.replyTo = replyTo
	return nil
}

type testQueue struct {
	reviews  []scheduler.ListingReviewMailPayload
	contacts []scheduler.ListingContactMailPayload
}

func (q *testQueue) EnqueueListingReviewMail(_ context.Context, p scheduler.ListingReviewMailPayload) error {
	q.reviews = append(q.reviews, p)
	return nil
}

func (q *testQueue) EnqueueListingContactMail(_ context.Context, p scheduler.ListingContactMailPayload) error {
	q.contacts = append(q.contacts, p)
	return nil
}

type testOwners struct{}

func (testOwners) GetUserEmail(context.Context, uuid.UUID) (string, error) {
	return "seller@example.com", nil
}

func TestReviewMailIsQueuedWithListingLink(t *testing.T) {
	queue := &testQueue{}
	sender := &testSender{}
	m := New(queue, sender, testOwners{}, testNotificationConfig{moderators: []string{"mod@example.com"}}, logger.New("development"))
	listingID := uuid.New()

	base := events.NewBaseEvent()
	err := m.Handle(context.Background(), events.ListingSubmittedForReview{BaseEvent: base, ListingID: listingID, OwnerID: uuid.New(), Title: "Golf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue.reviews) != 1 || sender.reviewCalls != 0 {
		t.Fatalf("expected one queued review mail, got %d queued and %d sent", len(queue.reviews), sender.reviewCalls)
	}
	got := queue.reviews[0]
	if got.ListingURL != "https://app.example.com/listings/"+listingID.String() || got.OwnerEmail != "seller@example.com" {
		t.Fatalf("unexpected payload %+v", got)
	}
	if got.EventID != base.ID.String() {
		t.Fatalf("expected task keyed by event %s, got %q", base.ID, got.EventID)
	}
}

func TestReviewMailSkippedWithoutModerators(t *testing.T) {
	queue := &testQueue{}
	m := New(queue, &testSender{}, testOwners{}, testNotificationConfig{}, logger.New("development"))

	if err := m.Handle(context.Background(), events.ListingSubmittedForReview{ListingID: uuid.New()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue.reviews) != 0 {
		t.Fatalf("expected nothing queued")
	}
}

func TestContactMailSentInProcessWithoutQueue(t *testing.T) {
	sender := &testSender{}
	m := New(nil, sender, testOwners{}, testNotificationConfig{}, logger.New("development"))

	err := m.Handle(context.Background(), events.ListingContactRequested{ListingID: uuid.New(), OwnerEmail: "seller@example.com", FromEmail: "buyer@example.com", Subject: "Hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.contactCalls != 1 || sender.replyTo != "buyer@example.com" {
		t.Fatalf("expected direct send with reply-to, got %+v", sender)
	}
}
