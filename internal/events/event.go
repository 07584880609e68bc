// Package events defines the marketplace's domain events. The bus itself
// lives in platform/events; its types are aliased here so modules import
// a single package.
package events

import (
	"autotradespot_backend/platform/events"
	"autotradespot_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates the in-process bus shared by all modules.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserSignedUp is published when a new user successfully registers.
type UserSignedUp struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}

func (e UserSignedUp) EventName() string { return "auth.user.signed_up" }

// =============================================================================
// Listing Domain Events
// =============================================================================

// ListingSubmittedForReview is published when an owner asks moderation to
// activate a listing.
type ListingSubmittedForReview struct {
	BaseEvent
	ListingID uuid.UUID `json:"listingId"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Title     string    `json:"title"`
}

func (e ListingSubmittedForReview) EventName() string { return "listings.submitted_for_review" }

// ListingStatusChanged is published after every lifecycle transition.
type ListingStatusChanged struct {
	BaseEvent
	ListingID uuid.UUID `json:"listingId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

func (e ListingStatusChanged) EventName() string { return "listings.status_changed" }

// ListingContactRequested is published when a visitor writes to a seller.
type ListingContactRequested struct {
	BaseEvent
	ListingID    uuid.UUID `json:"listingId"`
	ListingTitle string    `json:"listingTitle"`
	OwnerEmail   string    `json:"ownerEmail"`
	FromEmail    string    `json:"fromEmail"`
	Subject      string    `json:"subject"`
	Message      string    `json:"message"`
}

func (e ListingContactRequested) EventName() string { return "listings.contact_requested" }
