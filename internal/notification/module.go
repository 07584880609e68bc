// Package notification provides event handlers for sending notifications
// in response to domain events. Domain modules publish events and never
// talk to mail providers directly.
package notification

import (
	"context"
	"strings"

	"autotradespot_backend/internal/email"
	"autotradespot_backend/internal/events"
	"autotradespot_backend/internal/scheduler"
	"autotradespot_backend/platform/config"
	"autotradespot_backend/platform/logger"

	"github.com/google/uuid"
)

// OwnerEmailReader resolves the address of a listing owner.
type OwnerEmailReader interface {
	GetUserEmail(ctx context.Context, userID uuid.UUID) (string, error)
}

// Module handles all notification-related event subscriptions. Mail goes
// through the task queue when one is configured and is sent in-process
// otherwise.
type Module struct {
	queue  scheduler.MailQueue
	sender email.Sender
	owners OwnerEmailReader
	cfg    config.NotificationConfig
	log    *logger.Logger
}

// New creates a new notification module. queue may be nil.
func New(queue scheduler.MailQueue, sender email.Sender, owners OwnerEmailReader, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{
		queue:  queue,
		sender: sender,
		owners: owners,
		cfg:    cfg,
		log:    log,
	}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.ListingSubmittedForReview{}.EventName(), m)
	bus.Subscribe(events.ListingContactRequested{}.EventName(), m)

	m.log.Info("notification module registered event handlers", "queued", m.queue != nil)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.ListingSubmittedForReview:
		return m.handleListingSubmittedForReview(ctx, e)
	case events.ListingContactRequested:
		return m.handleListingContactRequested(ctx, e)
	default:
		return nil
	}
}

func (m *Module) handleListingSubmittedForReview(ctx context.Context, e events.ListingSubmittedForReview) error {
	ownerEmail, err := m.owners.GetUserEmail(ctx, e.OwnerID)
	if err != nil {
		m.log.Error("failed to resolve listing owner", "listingId", e.ListingID, "ownerId", e.OwnerID, "error", err)
		return err
	}

	payload := scheduler.ListingReviewMailPayload{
		EventID:      e.Key(),
		ListingID:    e.ListingID.String(),
		ListingTitle: e.Title,
		ListingURL:   m.listingURL(e.ListingID),
		OwnerEmail:   ownerEmail,
		To:           m.cfg.GetModerationEmails(),
	}
	if len(payload.To) == 0 {
		m.log.Warn("review mail skipped: no moderators configured", "listingId", e.ListingID)
		return nil
	}

	if m.queue != nil {
		return m.logResult("review mail queued", e.ListingID, m.queue.EnqueueListingReviewMail(ctx, payload))
	}
	err = m.sender.SendListingReviewEmail(ctx, payload.To, payload.OwnerEmail, payload.ListingTitle, payload.ListingURL)
	return m.logResult("review mail sent", e.ListingID, err)
}

func (m *Module) handleListingContactRequested(ctx context.Context, e events.ListingContactRequested) error {
	payload := scheduler.ListingContactMailPayload{
		EventID:      e.Key(),
		ListingID:    e.ListingID.String(),
		ListingTitle: e.ListingTitle,
		ListingURL:   m.listingURL(e.ListingID),
		ToEmail:      e.OwnerEmail,
		ReplyTo:      e.FromEmail,
		Subject:      e.Subject,
		Message:      e.Message,
	}

	if m.queue != nil {
		return m.logResult("contact mail queued", e.ListingID, m.queue.EnqueueListingContactMail(ctx, payload))
	}
	err := m.sender.SendListingContactEmail(ctx, payload.ToEmail, payload.ReplyTo, payload.Subject, payload.Message, payload.ListingTitle, payload.ListingURL)
	return m.logResult("contact mail sent", e.ListingID, err)
}

func (m *Module) logResult(msg string, listingID uuid.UUID, err error) error {
	if err != nil {
		m.log.Error("failed to deliver listing mail", "listingId", listingID, "error", err)
		return err
	}
	m.log.Info(msg, "listingId", listingID)
	return nil
}

func (m *Module) listingURL(id uuid.UUID) string {
	return strings.TrimRight(m.cfg.GetAppBaseURL(), "/") + "/listings/" + id.String()
}
