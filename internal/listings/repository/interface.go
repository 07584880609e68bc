package repository

import (
	"context"
	"time"

	"autotradespot_backend/internal/listings/domain"

	"github.com/google/uuid"
)

// ListingFields are the owner-editable columns of a listing.
type ListingFields struct {
	Title         string
	Description   string
	AvailableFrom time.Time
	Type          domain.Type
}

// Filter is a compiled conjunctive WHERE clause over the summary query.
// Column aliases available to it: l (listings), sp (sale_pricing),
// lp (lease_pricing), cd (car_details).
type Filter struct {
	Where   []string
	Args    []any
	OrderBy string
	Limit   int
}

// ListingReader loads listings and their sub-records.
type ListingReader interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	ListSummaries(ctx context.Context, filter Filter) ([]domain.Listing, error)
	ListImages(ctx context.Context, listingID uuid.UUID) ([]domain.Image, error)
	GetImage(ctx context.Context, imageID uuid.UUID) (domain.Image, error)
	IsFavourite(ctx context.Context, listingID, userID uuid.UUID) (bool, error)
}

// ListingWriter persists listings and their sub-records. Upserts follow
// create-or-update-by-key semantics; concurrent writers resolve to one winner.
type ListingWriter interface {
	Create(ctx context.Context, ownerID uuid.UUID, fields ListingFields) (*domain.Listing, error)
	Update(ctx context.Context, id uuid.UUID, fields ListingFields) error
	UpsertPricing(ctx context.Context, listingID uuid.UUID, pricing domain.Pricing) error
	UpsertDetails(ctx context.Context, listingID uuid.UUID, details domain.CarDetails, optionIDs []int) error
	AddImage(ctx context.Context, image domain.Image) (domain.Image, error)
	DeleteImage(ctx context.Context, imageID uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	ToggleFavourite(ctx context.Context, listingID, userID uuid.UUID) (bool, error)
	DeletePermanent(ctx context.Context, id uuid.UUID) error
}

// Repository is the full listing store.
type Repository interface {
	ListingReader
	ListingWriter
}
