// Package ports defines what the listing wizard needs from other bounded
// contexts. The listings service, the car catalog and the vehicle data
// gateway satisfy them.
package ports

import (
	"context"

	"autotradespot_backend/internal/listings/domain"
	listingports "autotradespot_backend/internal/listings/ports"
	"autotradespot_backend/internal/listings/repository"
	listingservice "autotradespot_backend/internal/listings/service"
	"autotradespot_backend/internal/vehicledata/transport"

	"github.com/google/uuid"
)

// ListingEditor performs the persistent side of each wizard step.
type ListingEditor interface {
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.Listing, error)
	SaveListing(ctx context.Context, ownerID uuid.UUID, existing *uuid.UUID, fields repository.ListingFields, pricing domain.Pricing) (*domain.Listing, error)
	SaveDetails(ctx context.Context, ownerID, listingID uuid.UUID, details domain.CarDetails, optionIDs []int) error
	AddImages(ctx context.Context, ownerID, listingID uuid.UUID, files []listingports.UploadedImage) ([]domain.Image, error)
	DeleteImage(ctx context.Context, ownerID, imageID uuid.UUID) error
	Finalize(ctx context.Context, ownerID, listingID uuid.UUID, final bool) (listingservice.FinalizeResult, error)
	ImageURLs(ctx context.Context, images []domain.Image) map[uuid.UUID]listingports.ImageURLs
}

// MakeModel is a resolved make and model pair. A zero ModelID means the
// model is unknown.
type MakeModel struct {
	MakeID    int
	MakeName  string
	ModelID   int
	ModelName string
}

// CarCatalog checks and resolves makes and models.
type CarCatalog interface {
	// CheckMakeModel fails with a validation error when modelID does not
	// belong to makeID.
	CheckMakeModel(ctx context.Context, makeID, modelID int) (MakeModel, error)
	// ResolveMakeModel looks names up case-insensitively. ok is false when
	// the make is unknown.
	ResolveMakeModel(ctx context.Context, makeName, modelName string) (mm MakeModel, ok bool, err error)
}

// PlateLookup queries the vehicle registry.
type PlateLookup interface {
	Lookup(ctx context.Context, plate string) transport.LookupResult
}
