// Package service implements the listing wizard. Every step reads and
// writes the draft session and delegates persistence to the listing store.
// Steps are independently retryable; a step that fails validation changes
// nothing.
package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"autotradespot_backend/internal/listings/domain"
	listingports "autotradespot_backend/internal/listings/ports"
	listingservice "autotradespot_backend/internal/listings/service"
	listingtransport "autotradespot_backend/internal/listings/transport"
	"autotradespot_backend/internal/session"
	"autotradespot_backend/internal/vehicledata"
	"autotradespot_backend/internal/wizard/ports"
	"autotradespot_backend/internal/wizard/transport"
	"autotradespot_backend/platform/apperr"
	"autotradespot_backend/platform/logger"
	"autotradespot_backend/platform/validator"

	"github.com/google/uuid"
)

const (
	msgNothingToSave   = "error saving, minimum requirements not met to save the listing"
	msgNoListing       = "start a listing first"
	msgSelectMakeModel = "Select a make and model first."
	msgValidation      = "validation failed"
)

// Deps groups the collaborators of the wizard.
type Deps struct {
	Listings ports.ListingEditor
	Catalog  ports.CarCatalog
	Plates   ports.PlateLookup
	Sessions session.Store
	Val      *validator.Validator
	Log      *logger.Logger
}

type Service struct {
	listings ports.ListingEditor
	catalog  ports.CarCatalog
	plates   ports.PlateLookup
	sessions session.Store
	val      *validator.Validator
	log      *logger.Logger
	now      func() time.Time
}

func New(deps Deps) *Service {
	return &Service{
		listings: deps.Listings,
		catalog:  deps.Catalog,
		plates:   deps.Plates,
		sessions: deps.Sessions,
		val:      deps.Val,
		log:      deps.Log,
		now:      time.Now,
	}
}

// draft loads the session and the listing it points at. A reference to a
// listing that is gone or owned by someone else resets the draft to empty.
func (s *Service) draft(ctx context.Context, ownerID uuid.UUID, sessionID string) (*session.Session, *domain.Listing, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if !sess.HasDraft() {
		return sess, nil, nil
	}

	l, err := s.listings.GetOwned(ctx, *sess.ListingInProgress, ownerID)
	switch {
	case apperr.Is(err, apperr.KindNotFound), apperr.Is(err, apperr.KindForbidden):
		s.log.Info("wizard draft reset", "listingId", sess.ListingInProgress.String(), "reason", err.Error())
		sess.ClearDraft()
		if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
			return nil, nil, err
		}
		return sess, nil, nil
	case err != nil:
		return nil, nil, err
	}
	return sess, l, nil
}

// requireListing is draft for steps that need a listing in progress.
func (s *Service) requireListing(ctx context.Context, ownerID uuid.UUID, sessionID string) (*session.Session, *domain.Listing, error) {
	sess, l, err := s.draft(ctx, ownerID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if l == nil {
		return nil, nil, apperr.BadRequest(msgNoListing)
	}
	return sess, l, nil
}

// State reports the draft session.
func (s *Service) State(ctx context.Context, ownerID uuid.UUID, sessionID string) (transport.StateResponse, error) {
	sess, l, err := s.draft(ctx, ownerID, sessionID)
	if err != nil {
		return transport.StateResponse{}, err
	}
	resp := transport.StateResponse{LPData: sess.LPData}
	if l != nil {
		id := l.ID.String()
		resp.ListingInProgress = &id
	}
	return resp, nil
}

// Cancel forgets the draft. Records already saved by earlier steps stay.
func (s *Service) Cancel(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.ClearDraft()
	return s.sessions.Save(ctx, sessionID, sess)
}

// PlateForm returns the licence plate of the current draft, if any.
func (s *Service) PlateForm(ctx context.Context, sessionID string) (transport.PlateStepResponse, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return transport.PlateStepResponse{}, err
	}
	return transport.PlateStepResponse{Licence: sess.LPData["licence"]}, nil
}

// SubmitPlate validates the plate, looks it up and replaces the plate data
// of the session. Format and lookup failures leave the session untouched.
func (s *Service) SubmitPlate(ctx context.Context, sessionID string, req transport.PlateRequest) (transport.PlateStepResponse, error) {
	input := strings.TrimSpace(req.LicencePlate)
	check := vehicledata.ValidatePlate(input)
	if !check.Valid {
		return transport.PlateStepResponse{Licence: input}, plateError(check.Reason)
	}

	result := s.plates.Lookup(ctx, check.Clean)
	if !result.OK {
		return transport.PlateStepResponse{Licence: input}, plateError(result.Message)
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return transport.PlateStepResponse{}, err
	}
	data := vehicledata.MapRelevant(check.Clean, result.Data)
	sess.LPData = data
	if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
		return transport.PlateStepResponse{}, err
	}
	return transport.PlateStepResponse{Licence: check.Clean, Data: data, Next: transport.StepType}, nil
}

func plateError(message string) error {
	return apperr.Field("licenceplate", message)
}

// TypeForm reconstructs the type step from the listing in progress, else
// from the plate data, else empty.
func (s *Service) TypeForm(ctx context.Context, ownerID uuid.UUID, sessionID string) (transport.TypeStepResponse, error) {
	sess, l, err := s.draft(ctx, ownerID, sessionID)
	if err != nil {
		return transport.TypeStepResponse{}, err
	}
	switch {
	case l != nil:
		return transport.TypeStepResponse{Source: transport.SourceListing, Form: typeForm(l), ListingID: l.ID.String()}, nil
	case sess.HasLPData():
		title := strings.TrimSpace(sess.LPData["make"] + " " + sess.LPData["model"])
		return transport.TypeStepResponse{Source: transport.SourcePlate, Form: transport.TypeForm{Title: title}}, nil
	default:
		return transport.TypeStepResponse{Source: transport.SourceEmpty}, nil
	}
}

// SubmitType validates the listing and its pricing together and saves both.
// The listing is created when the session has none.
func (s *Service) SubmitType(ctx context.Context, ownerID uuid.UUID, sessionID string, req transport.TypeRequest) (transport.TypeStepResponse, error) {
	errs := map[string]string{}
	collect(errs, s.val.Struct(req.ListingRequest))

	var (
		sale  = req.Pricing.Sale()
		lease = req.Pricing.Lease()
	)
	switch domain.Type(req.Type) {
	case domain.TypeSale:
		lease = nil
		collect(errs, s.val.Struct(sale))
	case domain.TypeLease:
		sale = nil
		collect(errs, s.val.Struct(lease))
	}
	if len(errs) > 0 {
		return transport.TypeStepResponse{}, apperr.Validation(msgValidation).WithDetails(errs)
	}

	fields, err := listingservice.FieldsFromRequest(req.ListingRequest, s.now())
	if err != nil {
		return transport.TypeStepResponse{}, err
	}
	pricing, err := listingservice.PricingFromRequest(fields.Type, sale, lease)
	if err != nil {
		return transport.TypeStepResponse{}, err
	}

	sess, current, err := s.draft(ctx, ownerID, sessionID)
	if err != nil {
		return transport.TypeStepResponse{}, err
	}
	var existing *uuid.UUID
	if current != nil {
		existing = &current.ID
	}

	l, err := s.listings.SaveListing(ctx, ownerID, existing, fields, pricing)
	if err != nil {
		return transport.TypeStepResponse{}, err
	}
	sess.ListingInProgress = &l.ID
	if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
		return transport.TypeStepResponse{}, err
	}
	return transport.TypeStepResponse{
		Source:    transport.SourceListing,
		Form:      typeForm(l),
		ListingID: l.ID.String(),
		Next:      transport.StepMake,
	}, nil
}

// MakeForm reconstructs the make step. Plate data carries either catalog
// ids from an earlier submission or registry names that are resolved here.
func (s *Service) MakeForm(ctx context.Context, ownerID uuid.UUID, sessionID string) (transport.MakeStepResponse, error) {
	sess, l, err := s.draft(ctx, ownerID, sessionID)
	if err != nil {
		return transport.MakeStepResponse{}, err
	}
	if l != nil && l.Details != nil && l.Details.MakeID != nil {
		return transport.MakeStepResponse{
			Source:  transport.SourceListing,
			Make:    l.Details.MakeID,
			Model:   l.Details.ModelID,
			Variant: l.Details.Variant,
		}, nil
	}
	if !sess.HasLPData() {
		return transport.MakeStepResponse{Source: transport.SourceEmpty}, nil
	}

	resp := transport.MakeStepResponse{Source: transport.SourcePlate, Variant: sess.LPData["variant"]}
	if makeID := atoiPtr(sess.LPData["makeId"]); makeID != nil {
		resp.Make = makeID
		resp.Model = atoiPtr(sess.LPData["modelId"])
		return resp, nil
	}
	mm, ok, err := s.catalog.ResolveMakeModel(ctx, sess.LPData["make"], sess.LPData["model"])
	if err != nil {
		return transport.MakeStepResponse{}, err
	}
	if ok {
		resp.Make = &mm.MakeID
		if mm.ModelID > 0 {
			resp.Model = &mm.ModelID
		}
	}
	return resp, nil
}

// SubmitMake checks the make and model pair and stores it in the plate
// data. Nothing is written to the listing until the details step.
func (s *Service) SubmitMake(ctx context.Context, sessionID string, req transport.MakeRequest) (transport.MakeStepResponse, error) {
	if err := s.val.Struct(req); err != nil {
		return transport.MakeStepResponse{}, apperr.Validation(msgValidation).WithDetails(validator.FieldErrors(err))
	}
	mm, err := s.catalog.CheckMakeModel(ctx, req.Make, req.Model)
	if err != nil {
		return transport.MakeStepResponse{}, err
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return transport.MakeStepResponse{}, err
	}
	variant := strings.TrimSpace(req.Variant)
	sess.SetLP(map[string]string{
		"makeId":  strconv.Itoa(mm.MakeID),
		"modelId": strconv.Itoa(mm.ModelID),
		"make":    mm.MakeName,
		"model":   mm.ModelName,
		"variant": variant,
	})
	if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
		return transport.MakeStepResponse{}, err
	}
	return transport.MakeStepResponse{
		Source:  transport.SourcePlate,
		Make:    &mm.MakeID,
		Model:   &mm.ModelID,
		Variant: variant,
		Next:    transport.StepDetails,
	}, nil
}

// DetailsForm reconstructs the details step.
func (s *Service) DetailsForm(ctx context.Context, ownerID uuid.UUID, sessionID string) (transport.DetailsStepResponse, error) {
	sess, l, err := s.draft(ctx, ownerID, sessionID)
	if err != nil {
		return transport.DetailsStepResponse{}, err
	}
	switch {
	case l != nil && l.Details != nil:
		return transport.DetailsStepResponse{Source: transport.SourceListing, Form: detailsForm(l.Details)}, nil
	case sess.HasLPData():
		return transport.DetailsStepResponse{Source: transport.SourcePlate, Form: detailsFormFromPlate(sess.LPData)}, nil
	default:
		return transport.DetailsStepResponse{Source: transport.SourceEmpty, Form: transport.DetailsForm{Options: []int{}}}, nil
	}
}

// SubmitDetails saves the car details of the listing in progress. Make,
// model, variant and plate come from the session.
func (s *Service) SubmitDetails(ctx context.Context, ownerID uuid.UUID, sessionID string, req transport.DetailsRequest) (transport.DetailsStepResponse, error) {
	if err := s.val.Struct(req); err != nil {
		return transport.DetailsStepResponse{}, apperr.Validation(msgValidation).WithDetails(validator.FieldErrors(err))
	}
	details, err := listingservice.DetailsFromRequest(req, s.now())
	if err != nil {
		return transport.DetailsStepResponse{}, err
	}

	sess, l, err := s.requireListing(ctx, ownerID, sessionID)
	if err != nil {
		return transport.DetailsStepResponse{}, err
	}
	details.MakeID = atoiPtr(sess.LPData["makeId"])
	details.ModelID = atoiPtr(sess.LPData["modelId"])
	if details.MakeID == nil || details.ModelID == nil {
		return transport.DetailsStepResponse{}, apperr.Validation(msgValidation).WithDetails(map[string]string{"make": msgSelectMakeModel})
	}
	details.Variant = sess.LPData["variant"]
	details.LicensePlate = sess.LPData["licence"]

	if err := s.listings.SaveDetails(ctx, ownerID, l.ID, details, req.Options); err != nil {
		return transport.DetailsStepResponse{}, err
	}
	form := detailsForm(&details)
	form.Options = append([]int{}, req.Options...)
	return transport.DetailsStepResponse{Source: transport.SourceListing, Form: form, Next: transport.StepImages}, nil
}

// ImagesStep lists the images of the listing in progress.
func (s *Service) ImagesStep(ctx context.Context, ownerID uuid.UUID, sessionID string) (transport.ImagesStepResponse, error) {
	_, l, err := s.draft(ctx, ownerID, sessionID)
	if err != nil {
		return transport.ImagesStepResponse{}, err
	}
	if l == nil {
		return transport.ImagesStepResponse{Images: []listingtransport.ImageResponse{}}, nil
	}
	return s.imagesResponse(ctx, l.ID, l.Images, ""), nil
}

// AddImages uploads images to the listing in progress. No count limits
// apply here; the posting gate checks for at least one image.
func (s *Service) AddImages(ctx context.Context, ownerID uuid.UUID, sessionID string, files []listingports.UploadedImage) (transport.ImagesStepResponse, error) {
	_, l, err := s.requireListing(ctx, ownerID, sessionID)
	if err != nil {
		return transport.ImagesStepResponse{}, err
	}
	if len(files) == 0 {
		return s.imagesResponse(ctx, l.ID, l.Images, transport.StepPreview), nil
	}
	added, err := s.listings.AddImages(ctx, ownerID, l.ID, files)
	if err != nil {
		return transport.ImagesStepResponse{}, err
	}
	return s.imagesResponse(ctx, l.ID, append(l.Images, added...), transport.StepPreview), nil
}

// DeleteImage removes one image of the listing in progress.
func (s *Service) DeleteImage(ctx context.Context, ownerID uuid.UUID, sessionID string, imageID uuid.UUID) (transport.ImagesStepResponse, error) {
	_, l, err := s.requireListing(ctx, ownerID, sessionID)
	if err != nil {
		return transport.ImagesStepResponse{}, err
	}
	if !hasImage(l.Images, imageID) {
		return transport.ImagesStepResponse{}, apperr.NotFound("image not found")
	}
	if err := s.listings.DeleteImage(ctx, ownerID, imageID); err != nil {
		return transport.ImagesStepResponse{}, err
	}

	kept := make([]domain.Image, 0, len(l.Images))
	for _, img := range l.Images {
		if img.ID != imageID {
			kept = append(kept, img)
		}
	}
	return s.imagesResponse(ctx, l.ID, kept, ""), nil
}

func hasImage(images []domain.Image, id uuid.UUID) bool {
	for _, img := range images {
		if img.ID == id {
			return true
		}
	}
	return false
}

func (s *Service) imagesResponse(ctx context.Context, listingID uuid.UUID, images []domain.Image, next string) transport.ImagesStepResponse {
	urls := s.listings.ImageURLs(ctx, images)
	return transport.ImagesStepResponse{
		ListingID: listingID.String(),
		Images:    listingtransport.ToImageResponses(images, urls),
		Next:      next,
	}
}

// Preview returns the listing in progress with signed image links.
func (s *Service) Preview(ctx context.Context, ownerID uuid.UUID, sessionID string) (*domain.Listing, map[uuid.UUID]listingports.ImageURLs, error) {
	_, l, err := s.requireListing(ctx, ownerID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return l, s.listings.ImageURLs(ctx, l.Images), nil
}

// Finalize saves the listing in progress as a draft or submits it for
// posting. A posted listing ends the draft session.
func (s *Service) Finalize(ctx context.Context, ownerID uuid.UUID, sessionID, mode string) (listingservice.FinalizeResult, error) {
	var final bool
	switch mode {
	case "draft":
	case "final":
		final = true
	default:
		return listingservice.FinalizeResult{}, apperr.BadRequest("unknown save method")
	}

	sess, l, err := s.draft(ctx, ownerID, sessionID)
	if err != nil {
		return listingservice.FinalizeResult{}, err
	}
	if l == nil {
		return listingservice.FinalizeResult{}, apperr.BadRequest(msgNothingToSave)
	}

	result, err := s.listings.Finalize(ctx, ownerID, l.ID, final)
	if err != nil {
		return listingservice.FinalizeResult{}, err
	}
	if result.Posted {
		sess.ClearDraft()
		if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
			s.log.WithContext(ctx).SoftFailure("wizard.finalize.clear_session", l.ID.String(), err)
		}
	}
	return result, nil
}

// collect merges field errors from tag validation and from domain checks.
func collect(into map[string]string, err error) {
	for field, msg := range validator.FieldErrors(err) {
		into[field] = msg
	}
	for field, msg := range apperr.FieldErrors(err) {
		into[field] = msg
	}
}

func atoiPtr(value string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}
