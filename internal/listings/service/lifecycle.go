package service

import (
	"context"

	"autotradespot_backend/internal/events"
	"autotradespot_backend/internal/listings/domain"
	"autotradespot_backend/platform/apperr"

	"github.com/google/uuid"
)

// Action is an owner or moderator lifecycle command.
type Action string

const (
	ActionSubmit     Action = "submit"
	ActionDelete     Action = "delete"
	ActionRestore    Action = "restore"
	ActionReserve    Action = "reserve"
	ActionSell       Action = "sell"
	ActionDeactivate Action = "deactivate"
)

var ownerActions = map[Action]func(*domain.Listing) error{
	ActionSubmit:     (*domain.Listing).SetUnderReview,
	ActionDelete:     (*domain.Listing).SetDeleted,
	ActionRestore:    (*domain.Listing).Restore,
	ActionReserve:    (*domain.Listing).SetReserved,
	ActionSell:       (*domain.Listing).SetSold,
	ActionDeactivate: (*domain.Listing).Deactivate,
}

// ApplyOwnerAction runs a lifecycle command on behalf of the owner.
func (s *Service) ApplyOwnerAction(ctx context.Context, id, ownerID uuid.UUID, action Action) (*domain.Listing, error) {
	apply, ok := ownerActions[action]
	if !ok {
		return nil, apperr.BadRequest("unknown listing action")
	}
	l, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, l, apply); err != nil {
		return nil, err
	}

	if action == ActionSubmit {
		s.eventBus.Publish(ctx, events.ListingSubmittedForReview{
			BaseEvent: events.NewBaseEvent(),
			ListingID: l.ID,
			OwnerID:   l.OwnerID,
			Title:     l.Title,
		})
	}
	return l, nil
}

// Approve activates a listing under review. Staff only.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, viewer Viewer) (*domain.Listing, error) {
	if !viewer.Staff {
		return nil, apperr.Forbidden("only moderators can approve listings")
	}
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, l, (*domain.Listing).Approve); err != nil {
		return nil, err
	}
	return l, nil
}

// Report flags a public listing for moderation.
func (s *Service) Report(ctx context.Context, id uuid.UUID, viewer Viewer) error {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if l.IsOwner(viewer.UserID) {
		return apperr.BadRequest("you cannot report your own listing")
	}
	return s.transition(ctx, l, (*domain.Listing).Report)
}

// DeletePermanent removes stored images and the listing row. Owners and
// staff only.
func (s *Service) DeletePermanent(ctx context.Context, id uuid.UUID, viewer Viewer) error {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !viewer.Staff && !l.IsOwner(viewer.UserID) {
		return apperr.Forbidden(msgNotOwner)
	}

	for _, img := range l.Images {
		if err := s.images.Remove(ctx, storedImage(img)); err != nil {
			s.log.WithContext(ctx).SoftFailure("listings.delete_permanent.image", img.ID.String(), err)
		}
	}
	if err := s.repo.DeletePermanent(ctx, id); err != nil {
		return err
	}
	s.log.Info("listing permanently deleted", "listingId", id, "by", viewer.UserID)
	return nil
}

// transition applies a domain transition and persists it with a
// compare-and-set on the previous status.
func (s *Service) transition(ctx context.Context, l *domain.Listing, apply func(*domain.Listing) error) error {
	from := l.Status
	if err := apply(l); err != nil {
		return domainError(l, err)
	}
	if from == l.Status {
		return nil
	}
	if err := s.repo.UpdateStatus(ctx, l.ID, from, l.Status); err != nil {
		l.Status = from
		return err
	}
	s.eventBus.Publish(ctx, events.ListingStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		ListingID: l.ID,
		OldStatus: from.String(),
		NewStatus: l.Status.String(),
	})
	return nil
}
