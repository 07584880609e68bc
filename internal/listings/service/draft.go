package service

import (
	"context"
	"errors"
	"strings"

	"autotradespot_backend/internal/listings/domain"
	"autotradespot_backend/internal/listings/transport"
	"autotradespot_backend/platform/apperr"
	"autotradespot_backend/platform/validator"

	"github.com/google/uuid"
)

// SoftFailure records a related record that could not be saved while the
// primary listing save went through.
type SoftFailure struct {
	Part    string
	Message string
	Details any
}

// DraftResult is the outcome of the single-call draft endpoint.
type DraftResult struct {
	Listing      *domain.Listing
	SoftFailures []SoftFailure
}

// SaveDraft creates a listing in DRAFT and then saves pricing and details
// best-effort. A failing sub-record never rolls back the listing; it is
// reported as a soft failure instead.
func (s *Service) SaveDraft(ctx context.Context, ownerID uuid.UUID, req transport.DraftRequest) (DraftResult, error) {
	fields, err := FieldsFromRequest(req.ListingRequest, s.now())
	if err != nil {
		return DraftResult{}, err
	}
	l, err := s.repo.Create(ctx, ownerID, fields)
	if err != nil {
		return DraftResult{}, err
	}

	result := DraftResult{Listing: l}
	if err := s.saveDraftPricing(ctx, l, req); err != nil {
		result.SoftFailures = append(result.SoftFailures, s.softFailure(ctx, l.ID, "pricing", err))
	}
	if req.Details != nil {
		if err := s.saveDraftDetails(ctx, l, req); err != nil {
			result.SoftFailures = append(result.SoftFailures, s.softFailure(ctx, l.ID, "details", err))
		}
	}

	if reloaded, err := s.repo.Get(ctx, l.ID); err == nil {
		result.Listing = reloaded
	}
	return result, nil
}

func (s *Service) saveDraftPricing(ctx context.Context, l *domain.Listing, req transport.DraftRequest) error {
	if req.SalePricing == nil && req.LeasePricing == nil {
		return nil
	}
	switch l.Type {
	case domain.TypeSale:
		if req.SalePricing == nil {
			return fieldError("sale_pricing", "Sale pricing is required for a sale listing.")
		}
		if err := s.val.Struct(req.SalePricing); err != nil {
			return validationError(err)
		}
	case domain.TypeLease:
		if req.LeasePricing == nil {
			return fieldError("lease_pricing", "Lease pricing is required for a lease listing.")
		}
		if err := s.val.Struct(req.LeasePricing); err != nil {
			return validationError(err)
		}
	}
	pricing, err := PricingFromRequest(l.Type, req.SalePricing, req.LeasePricing)
	if err != nil {
		return err
	}
	return s.repo.UpsertPricing(ctx, l.ID, pricing)
}

func (s *Service) saveDraftDetails(ctx context.Context, l *domain.Listing, req transport.DraftRequest) error {
	if err := s.val.Struct(req.Details); err != nil {
		return validationError(err)
	}
	details, err := DetailsFromRequest(*req.Details, s.now())
	if err != nil {
		return err
	}
	details.MakeID = req.Make
	details.ModelID = req.Model
	details.Variant = strings.TrimSpace(req.Variant)
	details.LicensePlate = strings.ToUpper(strings.TrimSpace(req.LicensePlate))
	if (details.MakeID == nil) != (details.ModelID == nil) {
		return fieldError("model", "Make and model must be selected together.")
	}
	return s.SaveDetails(ctx, l.OwnerID, l.ID, details, req.Details.Options)
}

func (s *Service) softFailure(ctx context.Context, listingID uuid.UUID, part string, err error) SoftFailure {
	s.log.WithContext(ctx).SoftFailure("listings.save_draft."+part, listingID.String(), err)

	var appErr *apperr.Error
	if errors.As(err, &appErr) && (appErr.Kind == apperr.KindValidation || appErr.Kind == apperr.KindNotFound) {
		return SoftFailure{Part: part, Message: appErr.Message, Details: appErr.Details}
	}
	return SoftFailure{Part: part, Message: "could not be saved"}
}

func validationError(err error) error {
	return apperr.Validation("validation failed").WithDetails(validator.FieldErrors(err))
}
