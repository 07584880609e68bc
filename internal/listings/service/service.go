// Package service implements the listing store operations: viewing,
// favourites, lifecycle transitions, contact requests and the editing
// operations the wizard drives.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autotradespot_backend/internal/events"
	"autotradespot_backend/internal/listings/domain"
	"autotradespot_backend/internal/listings/ports"
	"autotradespot_backend/internal/listings/repository"
	"autotradespot_backend/internal/session"
	"autotradespot_backend/platform/apperr"
	"autotradespot_backend/platform/logger"
	"autotradespot_backend/platform/validator"

	"github.com/google/uuid"
)

const (
	msgNotOwner        = "you do not own this listing"
	msgViewDenied      = "you do not have permission to view this listing"
	latestListingCount = 6
)

// Viewer identifies the caller. A nil *Viewer is an anonymous visitor.
type Viewer struct {
	UserID uuid.UUID
	Staff  bool
}

// Deps groups the collaborators of the listing service.
type Deps struct {
	Repo     repository.Repository
	Users    ports.UserProvider
	Images   ports.ImageStore
	Catalog  ports.CatalogValidator
	Sessions session.Store
	EventBus events.Bus
	Val      *validator.Validator
	Log      *logger.Logger
}

// Service is the listing application service.
type Service struct {
	repo     repository.Repository
	users    ports.UserProvider
	images   ports.ImageStore
	catalog  ports.CatalogValidator
	sessions session.Store
	eventBus events.Bus
	val      *validator.Validator
	log      *logger.Logger
	now      func() time.Time
}

// New creates the listing service.
func New(deps Deps) *Service {
	return &Service{
		repo:     deps.Repo,
		users:    deps.Users,
		images:   deps.Images,
		catalog:  deps.Catalog,
		sessions: deps.Sessions,
		eventBus: deps.EventBus,
		val:      deps.Val,
		log:      deps.Log,
		now:      time.Now,
	}
}

// View loads a listing for a viewer and counts the first view of each
// browsing session. Owner views are never counted.
func (s *Service) View(ctx context.Context, id uuid.UUID, viewer *Viewer, sessionID string) (*domain.Listing, error) {
	l, err := s.viewable(ctx, id, viewer)
	if err != nil {
		return nil, err
	}

	var viewerID *uuid.UUID
	if viewer != nil {
		viewerID = &viewer.UserID
	}
	if l.CountsView(viewerID) && sessionID != "" {
		counted, err := s.countView(ctx, l.ID, sessionID)
		if err != nil {
			s.log.WithContext(ctx).SoftFailure("listings.count_view", l.ID.String(), err)
		} else if counted {
			l.ViewCount++
		}
	}
	return l, nil
}

func (s *Service) countView(ctx context.Context, listingID uuid.UUID, sessionID string) (bool, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if !sess.MarkViewed(listingID) {
		return false, nil
	}
	if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
		return false, err
	}
	if err := s.repo.IncrementViews(ctx, listingID); err != nil {
		return false, err
	}
	return true, nil
}

// IsFavourite reports whether the user marked the listing.
func (s *Service) IsFavourite(ctx context.Context, listingID, userID uuid.UUID) (bool, error) {
	return s.repo.IsFavourite(ctx, listingID, userID)
}

// ToggleFavourite flips the favourite flag of a viewable listing.
func (s *Service) ToggleFavourite(ctx context.Context, listingID uuid.UUID, viewer Viewer) (bool, error) {
	l, err := s.repo.Get(ctx, listingID)
	if err != nil {
		return false, err
	}
	if !l.CanView(&viewer.UserID, viewer.Staff) {
		return false, apperr.Forbidden(msgViewDenied)
	}
	return s.repo.ToggleFavourite(ctx, listingID, viewer.UserID)
}

// ListFavourites returns the listings a user marked.
func (s *Service) ListFavourites(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error) {
	return s.repo.ListSummaries(ctx, repository.Filter{
		Where: []string{"l.id IN (SELECT listing_id FROM listing_favourites WHERE user_id = $1)"},
		Args:  []any{userID},
	})
}

// ListByOwner returns all listings of a user ordered by status.
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Listing, error) {
	return s.repo.ListSummaries(ctx, repository.Filter{
		Where:   []string{"l.owner_id = $1"},
		Args:    []any{ownerID},
		OrderBy: "l.status, " + repository.DefaultOrder,
	})
}

// Latest returns the newest active listings for the home page.
func (s *Service) Latest(ctx context.Context) ([]domain.Listing, error) {
	return s.repo.ListSummaries(ctx, repository.Filter{
		Where:   []string{"l.status = $1"},
		Args:    []any{domain.StatusActive},
		OrderBy: "l.created_at DESC, l.modified_at DESC",
		Limit:   latestListingCount,
	})
}

// ImageURLs resolves download links for the given images. Images whose
// links cannot be signed are skipped and logged.
func (s *Service) ImageURLs(ctx context.Context, images []domain.Image) map[uuid.UUID]ports.ImageURLs {
	out := make(map[uuid.UUID]ports.ImageURLs, len(images))
	for _, img := range images {
		urls, err := s.images.URLs(ctx, storedImage(img))
		if err != nil {
			s.log.WithContext(ctx).SoftFailure("listings.sign_image", img.ID.String(), err)
			continue
		}
		out[img.ID] = urls
	}
	return out
}

// getOwned loads a listing and checks ownership.
func (s *Service) getOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.Listing, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.IsOwner(ownerID) {
		return nil, apperr.Forbidden(msgNotOwner)
	}
	return l, nil
}

// GetOwned loads a listing owned by ownerID.
func (s *Service) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.Listing, error) {
	return s.getOwned(ctx, id, ownerID)
}

func storedImage(img domain.Image) ports.StoredImage {
	return ports.StoredImage{
		OriginalKey:  img.OriginalKey,
		ThumbnailKey: img.ThumbnailKey,
		PreviewKey:   img.PreviewKey,
		ContentType:  img.ContentType,
		Size:         img.SizeBytes,
	}
}

// domainError maps lifecycle rule violations onto typed application errors.
func domainError(l *domain.Listing, err error) error {
	switch {
	case errors.Is(err, domain.ErrIncomplete):
		_, failed := l.CompleteForPosting()
		return apperr.Validation("listing is not complete for posting").WithDetails(map[string]any{
			"reasons": l.Explain(failed),
		})
	case errors.Is(err, domain.ErrTransitionNotAllowed):
		return apperr.Conflict(fmt.Sprintf("a listing that is %s cannot be changed this way", l.Status))
	case errors.Is(err, domain.ErrNotOwner):
		return apperr.Forbidden(msgNotOwner)
	}
	return err
}
