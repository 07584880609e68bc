package service

import (
	"context"
	"testing"

	"autotradespot_backend/internal/listings/domain"
	listingports "autotradespot_backend/internal/listings/ports"
	listingservice "autotradespot_backend/internal/listings/service"
	listingtransport "autotradespot_backend/internal/listings/transport"
	vdtransport "autotradespot_backend/internal/vehicledata/transport"
	"autotradespot_backend/internal/wizard/ports"
	"autotradespot_backend/internal/wizard/transport"
	"autotradespot_backend/platform/apperr"

	"github.com/google/uuid"
)

func details(err error) map[string]string {
	return apperr.FieldErrors(err)
}

func TestTypeFormUsesPlateDataForTitle(t *testing.T) {
	f := newFixture()
	sess := f.session(t)
	sess.SetLP(map[string]string{"licence": "AB123C", "make": "Volkswagen", "model": "Golf"})
	f.saveSession(t, sess)

	resp, err := f.svc.TypeForm(context.Background(), f.owner, f.sid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Source != transport.SourcePlate || resp.Form.Title != "Volkswagen Golf" {
		t.Fatalf("expected plate title, got %+v", resp)
	}
}

func TestTypeFormEmptyWithoutDraft(t *testing.T) {
	f := newFixture()
	resp, err := f.svc.TypeForm(context.Background(), f.owner, f.sid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Source != transport.SourceEmpty || resp.Form.Title != "" {
		t.Fatalf("expected empty form, got %+v", resp)
	}
}

func TestStaleDraftIsReset(t *testing.T) {
	f := newFixture()
	sess := f.session(t)
	missing := uuid.New()
	sess.ListingInProgress = &missing
	sess.SetLP(map[string]string{"licence": "AB123C"})
	f.saveSession(t, sess)

	state, err := f.svc.State(context.Background(), f.owner, f.sid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.ListingInProgress != nil {
		t.Fatalf("expected reset draft, got %v", *state.ListingInProgress)
	}
	if after := f.session(t); after.HasDraft() || after.HasLPData() {
		t.Fatalf("expected cleared session, got %+v", after)
	}
}

func TestDraftOfAnotherOwnerIsReset(t *testing.T) {
	f := newFixture()
	other := &domain.Listing{ID: uuid.New(), OwnerID: uuid.New(), Type: domain.TypeSale}
	f.editor.listings[other.ID] = other
	sess := f.session(t)
	sess.ListingInProgress = &other.ID
	f.saveSession(t, sess)

	resp, err := f.svc.TypeForm(context.Background(), f.owner, f.sid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Source != transport.SourceEmpty {
		t.Fatalf("expected empty form after reset, got %s", resp.Source)
	}
}

func TestSubmitPlateRejectsMalformedPlate(t *testing.T) {
	f := newFixture()
	_, err := f.svc.SubmitPlate(context.Background(), f.sid, transport.PlateRequest{LicencePlate: "AB12"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if details(err)["licenceplate"] == "" {
		t.Fatalf("expected licenceplate error, got %v", details(err))
	}
	if f.plates.calls != 0 {
		t.Fatalf("expected no lookup for a malformed plate")
	}
}

func TestSubmitPlateLookupFailureKeepsSession(t *testing.T) {
	f := newFixture()
	sess := f.session(t)
	sess.SetLP(map[string]string{"licence": "XX99XX"})
	f.saveSession(t, sess)
	f.plates.result = vdtransport.LookupResult{Message: "No vehicle data found", Failure: vdtransport.FailureNoData}

	_, err := f.svc.SubmitPlate(context.Background(), f.sid, transport.PlateRequest{LicencePlate: "ab-123-c"})
	if details(err)["licenceplate"] != "No vehicle data found" {
		t.Fatalf("expected lookup message, got %v", err)
	}
	if got := f.session(t).LPData["licence"]; got != "XX99XX" {
		t.Fatalf("expected session untouched, got %q", got)
	}
}

func TestSubmitPlateReplacesPlateData(t *testing.T) {
	f := newFixture()
	sess := f.session(t)
	sess.SetLP(map[string]string{"makeId": "3", "variant": "GTI"})
	f.saveSession(t, sess)
	f.plates.result = vdtransport.LookupResult{OK: true, Data: map[string]any{"merk": "VOLKSWAGEN", "handelsbenaming": "GOLF"}}

	resp, err := f.svc.SubmitPlate(context.Background(), f.sid, transport.PlateRequest{LicencePlate: "ab-123-c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Licence != "AB123C" || resp.Next != transport.StepType {
		t.Fatalf("unexpected response %+v", resp)
	}
	lp := f.session(t).LPData
	if lp["make"] != "Volkswagen" || lp["licence"] != "AB123C" {
		t.Fatalf("expected registry data, got %v", lp)
	}
	if _, ok := lp["makeId"]; ok {
		t.Fatalf("expected previous plate data replaced, got %v", lp)
	}
}

func TestSubmitTypeCollectsListingAndPricingErrors(t *testing.T) {
	f := newFixture()
	req := transport.TypeRequest{ListingRequest: listingtransport.ListingRequest{Type: "S"}}

	_, err := f.svc.SubmitType(context.Background(), f.owner, f.sid, req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	got := details(err)
	for _, field := range []string{"title", "pricetype", "price"} {
		if got[field] == "" {
			t.Fatalf("expected error for %s, got %v", field, got)
		}
	}
	if f.session(t).HasDraft() {
		t.Fatalf("expected no draft after failed step")
	}
}

func TestSubmitTypeCreatesThenUpdatesListing(t *testing.T) {
	f := newFixture()
	req := transport.TypeRequest{
		ListingRequest: listingtransport.ListingRequest{Title: "Golf GTI", Type: "S"},
		Pricing:        transport.PricingFields{PriceType: "F", Price: 12500},
	}

	first, err := f.svc.SubmitType(context.Background(), f.owner, f.sid, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Next != transport.StepMake || first.Form.Pricing == nil || first.Form.Pricing.Price != 12500 {
		t.Fatalf("unexpected response %+v", first)
	}
	if first.Form.AvailableFrom != "2024-05-01" {
		t.Fatalf("expected availability to default to today, got %s", first.Form.AvailableFrom)
	}

	req.Title = "Golf R"
	second, err := f.svc.SubmitType(context.Background(), f.owner, f.sid, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ListingID != first.ListingID {
		t.Fatalf("expected the same listing to be updated, got %s and %s", first.ListingID, second.ListingID)
	}
	if len(f.editor.listings) != 1 {
		t.Fatalf("expected one listing, got %d", len(f.editor.listings))
	}
}

func TestMakeFormResolvesRegistryNames(t *testing.T) {
	f := newFixture()
	f.catalog.resolved = ports.MakeModel{MakeID: 7, MakeName: "Volkswagen", ModelID: 42, ModelName: "Golf"}
	f.catalog.known = true
	sess := f.session(t)
	sess.SetLP(map[string]string{"make": "Volkswagen", "model": "Golf"})
	f.saveSession(t, sess)

	resp, err := f.svc.MakeForm(context.Background(), f.owner, f.sid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Make == nil || *resp.Make != 7 || resp.Model == nil || *resp.Model != 42 {
		t.Fatalf("expected resolved ids, got %+v", resp)
	}
}

func TestSubmitMakeRejectsMismatchedModel(t *testing.T) {
	f := newFixture()
	f.catalog.checkErr = apperr.Validation("validation failed").WithDetails(map[string]string{"model": "wrong make"})

	_, err := f.svc.SubmitMake(context.Background(), f.sid, transport.MakeRequest{Make: 1, Model: 99})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.session(t).HasLPData() {
		t.Fatalf("expected session untouched")
	}
}

func TestSubmitDetailsTakesMakeFromSession(t *testing.T) {
	f := newFixture()
	l := f.ownedDraft(t)
	if _, err := f.svc.SubmitMake(context.Background(), f.sid, transport.MakeRequest{Make: 3, Model: 12, Variant: " GTI "}); err != nil {
		t.Fatalf("submit make: %v", err)
	}
	sess := f.session(t)
	sess.SetLP(map[string]string{"licence": "AB123C"})
	f.saveSession(t, sess)

	mileage := 85000
	req := transport.DetailsRequest{
		Transmission:    "MANUAL",
		FuelType:        "B",
		BodyType:        "C",
		Condition:       "U",
		ManufactureYear: 2018,
		Mileage:         &mileage,
		Options:         []int{1, 2},
	}
	resp, err := f.svc.SubmitDetails(context.Background(), f.owner, f.sid, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	saved := f.editor.savedDetails
	if saved == nil || *saved.MakeID != 3 || *saved.ModelID != 12 {
		t.Fatalf("expected make and model from session, got %+v", saved)
	}
	if saved.Variant != "GTI" || saved.LicensePlate != "AB123C" {
		t.Fatalf("expected variant and plate from session, got %+v", saved)
	}
	if f.editor.listings[l.ID].Details == nil || resp.Next != transport.StepImages {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestSubmitDetailsRequiresMake(t *testing.T) {
	f := newFixture()
	f.ownedDraft(t)
	mileage := 1000
	req := transport.DetailsRequest{Transmission: "AUTO", FuelType: "E", BodyType: "SUV", Condition: "N", ManufactureYear: 2023, Mileage: &mileage}

	_, err := f.svc.SubmitDetails(context.Background(), f.owner, f.sid, req)
	if details(err)["make"] == "" {
		t.Fatalf("expected make error, got %v", err)
	}
}

func TestSubmitDetailsWithoutListing(t *testing.T) {
	f := newFixture()
	mileage := 1000
	req := transport.DetailsRequest{Transmission: "AUTO", FuelType: "E", BodyType: "SUV", Condition: "N", ManufactureYear: 2023, Mileage: &mileage}

	_, err := f.svc.SubmitDetails(context.Background(), f.owner, f.sid, req)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestDetailsFormPrefillsFromPlate(t *testing.T) {
	f := newFixture()
	sess := f.session(t)
	sess.SetLP(map[string]string{"fuel_type": "D", "num_doors": "5", "manufacture_year": "2016"})
	f.saveSession(t, sess)

	resp, err := f.svc.DetailsForm(context.Background(), f.owner, f.sid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Form.FuelType != "D" || resp.Form.NumDoors == nil || *resp.Form.NumDoors != 5 || *resp.Form.ManufactureYear != 2016 {
		t.Fatalf("unexpected form %+v", resp.Form)
	}
}

func TestAddImagesRequiresListing(t *testing.T) {
	f := newFixture()
	_, err := f.svc.AddImages(context.Background(), f.owner, f.sid, []listingports.UploadedImage{{FileName: "a.jpg"}})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestAddImagesReturnsAllImages(t *testing.T) {
	f := newFixture()
	l := f.ownedDraft(t)
	l.Images = []domain.Image{{ID: uuid.New(), FileName: "front.jpg"}}

	resp, err := f.svc.AddImages(context.Background(), f.owner, f.sid, []listingports.UploadedImage{{FileName: "back.jpg"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Images) != 2 || resp.Next != transport.StepPreview {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAddImagesWithNoFilesReturnsCurrentImages(t *testing.T) {
	f := newFixture()
	l := f.ownedDraft(t)
	l.Images = []domain.Image{{ID: uuid.New(), FileName: "front.jpg"}}

	resp, err := f.svc.AddImages(context.Background(), f.owner, f.sid, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Images) != 1 || resp.Images[0].FileName != "front.jpg" {
		t.Fatalf("expected current images, got %+v", resp.Images)
	}
	if f.editor.uploads != 0 {
		t.Fatalf("expected no upload, got %d", f.editor.uploads)
	}
}

func TestDeleteImageRemovesImageOfDraft(t *testing.T) {
	f := newFixture()
	l := f.ownedDraft(t)
	front := domain.Image{ID: uuid.New(), FileName: "front.jpg"}
	back := domain.Image{ID: uuid.New(), FileName: "back.jpg"}
	l.Images = []domain.Image{front, back}

	resp, err := f.svc.DeleteImage(context.Background(), f.owner, f.sid, front.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Images) != 1 || resp.Images[0].ID != back.ID.String() {
		t.Fatalf("expected only the back image, got %+v", resp.Images)
	}
	if len(f.editor.deleted) != 1 || f.editor.deleted[0] != front.ID {
		t.Fatalf("expected front image deleted, got %v", f.editor.deleted)
	}
}

func TestDeleteImageOfOtherListingIsNotFound(t *testing.T) {
	f := newFixture()
	l := f.ownedDraft(t)
	l.Images = []domain.Image{{ID: uuid.New(), FileName: "front.jpg"}}

	_, err := f.svc.DeleteImage(context.Background(), f.owner, f.sid, uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(f.editor.deleted) != 0 {
		t.Fatalf("expected nothing deleted, got %v", f.editor.deleted)
	}
}

func TestFinalizeWithoutListing(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Finalize(context.Background(), f.owner, f.sid, "final")
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestFinalizeUnknownMode(t *testing.T) {
	f := newFixture()
	f.ownedDraft(t)
	if _, err := f.svc.Finalize(context.Background(), f.owner, f.sid, "publish"); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestFinalizePostedClearsSession(t *testing.T) {
	f := newFixture()
	f.ownedDraft(t)
	f.editor.finalize = listingservice.FinalizeResult{Posted: true}

	result, err := f.svc.Finalize(context.Background(), f.owner, f.sid, "final")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Posted || f.session(t).HasDraft() {
		t.Fatalf("expected posted listing and cleared session")
	}
}

func TestFinalizeIncompleteKeepsSession(t *testing.T) {
	f := newFixture()
	f.ownedDraft(t)
	f.editor.finalize = listingservice.FinalizeResult{Reasons: []string{"no images"}}

	result, err := f.svc.Finalize(context.Background(), f.owner, f.sid, "final")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Posted || len(result.Reasons) != 1 || !f.session(t).HasDraft() {
		t.Fatalf("expected reasons and kept session, got %+v", result)
	}
}

func TestCancelClearsDraft(t *testing.T) {
	f := newFixture()
	l := f.ownedDraft(t)
	sess := f.session(t)
	sess.SetLP(map[string]string{"licence": "AB123C"})
	f.saveSession(t, sess)

	if err := f.svc.Cancel(context.Background(), f.sid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after := f.session(t); after.HasDraft() || after.HasLPData() {
		t.Fatalf("expected cleared session, got %+v", after)
	}
	if _, ok := f.editor.listings[l.ID]; !ok {
		t.Fatalf("expected listing record kept")
	}
}

func TestPricingFormByType(t *testing.T) {
	lease, ok := PricingForm("L")
	if !ok || len(lease.Fields) != 5 {
		t.Fatalf("expected five lease fields, got %+v", lease)
	}
	if _, ok := PricingForm("X"); ok {
		t.Fatalf("expected no form for an unknown type")
	}
}
