package service

import (
	"context"
	"strconv"

	"autotradespot_backend/internal/listings/domain"
	"autotradespot_backend/internal/listings/ports"
	"autotradespot_backend/internal/listings/repository"
	"autotradespot_backend/platform/apperr"

	"github.com/google/uuid"
)

func ensureEditable(l *domain.Listing) error {
	if l.Status.Locked() || l.Status == domain.StatusUnderReview {
		return apperr.Conflict("a listing that is " + l.Status.String() + " cannot be edited")
	}
	return nil
}

// SaveListing creates or updates the listing referenced by existing and
// writes its pricing. A stale reference creates a new listing.
func (s *Service) SaveListing(ctx context.Context, ownerID uuid.UUID, existing *uuid.UUID, fields repository.ListingFields, pricing domain.Pricing) (*domain.Listing, error) {
	if pricing == nil || pricing.ListingType() != fields.Type {
		return nil, fieldError("pricing", "Pricing does not match the listing type.")
	}

	var l *domain.Listing
	if existing != nil {
		current, err := s.getOwned(ctx, *existing, ownerID)
		switch {
		case apperr.Is(err, apperr.KindNotFound):
			current = nil
		case err != nil:
			return nil, err
		}
		if current != nil {
			if err := ensureEditable(current); err != nil {
				return nil, err
			}
			if err := s.repo.Update(ctx, current.ID, fields); err != nil {
				return nil, err
			}
			l = current
		}
	}

	if l == nil {
		created, err := s.repo.Create(ctx, ownerID, fields)
		if err != nil {
			return nil, err
		}
		s.log.Info("listing created", "listingId", created.ID, "ownerId", ownerID)
		l = created
	}

	if err := s.repo.UpsertPricing(ctx, l.ID, pricing); err != nil {
		return nil, err
	}
	l.Title, l.Description, l.AvailableFrom, l.Type = fields.Title, fields.Description, fields.AvailableFrom, fields.Type
	l.Pricing = pricing
	return l, nil
}

// SaveDetails writes the car details of an owned listing and replaces its
// option set.
func (s *Service) SaveDetails(ctx context.Context, ownerID, listingID uuid.UUID, details domain.CarDetails, optionIDs []int) error {
	l, err := s.getOwned(ctx, listingID, ownerID)
	if err != nil {
		return err
	}
	if err := ensureEditable(l); err != nil {
		return err
	}
	if details.MakeID != nil && details.ModelID != nil {
		if err := s.catalog.CheckPair(ctx, *details.MakeID, *details.ModelID); err != nil {
			return err
		}
	}
	if len(optionIDs) > 0 {
		if err := s.catalog.CheckOptions(ctx, optionIDs); err != nil {
			return err
		}
	}
	return s.repo.UpsertDetails(ctx, listingID, details, optionIDs)
}

// AddImages stores each upload with its renditions and records it.
func (s *Service) AddImages(ctx context.Context, ownerID, listingID uuid.UUID, files []ports.UploadedImage) ([]domain.Image, error) {
	l, err := s.getOwned(ctx, listingID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := ensureEditable(l); err != nil {
		return nil, err
	}

	added := make([]domain.Image, 0, len(files))
	for _, f := range files {
		stored, err := s.images.Store(ctx, l.OwnerID, l.ID, f)
		if err != nil {
			return added, err
		}
		img, err := s.repo.AddImage(ctx, domain.Image{
			ListingID:    l.ID,
			FileName:     f.FileName,
			ContentType:  stored.ContentType,
			SizeBytes:    stored.Size,
			OriginalKey:  stored.OriginalKey,
			ThumbnailKey: stored.ThumbnailKey,
			PreviewKey:   stored.PreviewKey,
		})
		if err != nil {
			if rmErr := s.images.Remove(ctx, stored); rmErr != nil {
				s.log.WithContext(ctx).SoftFailure("listings.add_image.cleanup", stored.OriginalKey, rmErr)
			}
			return added, err
		}
		added = append(added, img)
	}
	return added, nil
}

// DeleteImage removes one image of an owned listing.
func (s *Service) DeleteImage(ctx context.Context, ownerID, imageID uuid.UUID) error {
	img, err := s.repo.GetImage(ctx, imageID)
	if err != nil {
		return err
	}
	if _, err := s.getOwned(ctx, img.ListingID, ownerID); err != nil {
		return err
	}
	if err := s.repo.DeleteImage(ctx, imageID); err != nil {
		return err
	}
	if err := s.images.Remove(ctx, storedImage(img)); err != nil {
		s.log.WithContext(ctx).SoftFailure("listings.delete_image", img.ID.String(), err)
	}
	return nil
}

// FinalizeResult reports the outcome of a wizard finalisation.
type FinalizeResult struct {
	Listing *domain.Listing
	Posted  bool
	Reasons []string
}

// Finalize saves an owned listing as draft, or activates it when it passes
// the readiness gate. An incomplete listing stays as it is and the failing
// reasons are returned.
func (s *Service) Finalize(ctx context.Context, ownerID, listingID uuid.UUID, final bool) (FinalizeResult, error) {
	l, err := s.getOwned(ctx, listingID, ownerID)
	if err != nil {
		return FinalizeResult{}, err
	}
	if !final {
		if err := s.transition(ctx, l, (*domain.Listing).SaveAsDraft); err != nil {
			return FinalizeResult{}, err
		}
		return FinalizeResult{Listing: l}, nil
	}

	err = s.transition(ctx, l, (*domain.Listing).Publish)
	if apperr.Is(err, apperr.KindValidation) {
		_, failed := l.CompleteForPosting()
		return FinalizeResult{Listing: l, Reasons: l.Explain(failed)}, nil
	}
	if err != nil {
		return FinalizeResult{}, err
	}
	return FinalizeResult{Listing: l, Posted: true}, nil
}

// Modify puts an owned listing back into the browsing session as the
// listing in progress, seeding the plate data from its car details.
func (s *Service) Modify(ctx context.Context, ownerID, listingID uuid.UUID, sessionID string) error {
	l, err := s.getOwned(ctx, listingID, ownerID)
	if err != nil {
		return err
	}
	if err := ensureEditable(l); err != nil {
		return err
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.ClearDraft()
	sess.ListingInProgress = &l.ID
	if d := l.Details; d != nil {
		sess.SetLP(seedFromDetails(d))
	}
	return s.sessions.Save(ctx, sessionID, sess)
}

func seedFromDetails(d *domain.CarDetails) map[string]string {
	lp := map[string]string{
		"licence": d.LicensePlate,
		"make":    d.MakeName,
		"model":   d.ModelName,
		"variant": d.Variant,
	}
	if d.MakeID != nil {
		lp["makeId"] = strconv.Itoa(*d.MakeID)
	}
	if d.ModelID != nil {
		lp["modelId"] = strconv.Itoa(*d.ModelID)
	}
	return lp
}
