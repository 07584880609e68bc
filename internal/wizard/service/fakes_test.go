package service

import (
	"context"
	"testing"
	"time"

	"autotradespot_backend/internal/listings/domain"
	listingports "autotradespot_backend/internal/listings/ports"
	"autotradespot_backend/internal/listings/repository"
	listingservice "autotradespot_backend/internal/listings/service"
	"autotradespot_backend/internal/session"
	"autotradespot_backend/internal/vehicledata/transport"
	"autotradespot_backend/internal/wizard/ports"
	"autotradespot_backend/platform/apperr"
	"autotradespot_backend/platform/logger"
	"autotradespot_backend/platform/validator"

	"github.com/google/uuid"
)

type fakeEditor struct {
	listings     map[uuid.UUID]*domain.Listing
	savedDetails *domain.CarDetails
	finalize     listingservice.FinalizeResult
	uploads      int
	deleted      []uuid.UUID
}

func (e *fakeEditor) GetOwned(_ context.Context, id, ownerID uuid.UUID) (*domain.Listing, error) {
	l, ok := e.listings[id]
	if !ok {
		return nil, apperr.NotFound("listing not found")
	}
	if l.OwnerID != ownerID {
		return nil, apperr.Forbidden("you do not own this listing")
	}
	return l, nil
}

func (e *fakeEditor) SaveListing(_ context.Context, ownerID uuid.UUID, existing *uuid.UUID, fields repository.ListingFields, pricing domain.Pricing) (*domain.Listing, error) {
	id := uuid.New()
	if existing != nil {
		id = *existing
	}
	l := &domain.Listing{
		ID:            id,
		OwnerID:       ownerID,
		Title:         fields.Title,
		Description:   fields.Description,
		AvailableFrom: fields.AvailableFrom,
		Type:          fields.Type,
		Status:        domain.StatusDraft,
		Pricing:       pricing,
	}
	e.listings[id] = l
	return l, nil
}

func (e *fakeEditor) SaveDetails(_ context.Context, _ uuid.UUID, listingID uuid.UUID, details domain.CarDetails, _ []int) error {
	e.savedDetails = &details
	e.listings[listingID].Details = &details
	return nil
}

func (e *fakeEditor) AddImages(_ context.Context, _ uuid.UUID, listingID uuid.UUID, files []listingports.UploadedImage) ([]domain.Image, error) {
	e.uploads++
	added := make([]domain.Image, 0, len(files))
	for _, f := range files {
		added = append(added, domain.Image{ID: uuid.New(), ListingID: listingID, FileName: f.FileName})
	}
	return added, nil
}

func (e *fakeEditor) DeleteImage(_ context.Context, _ uuid.UUID, imageID uuid.UUID) error {
	e.deleted = append(e.deleted, imageID)
	return nil
}

func (e *fakeEditor) Finalize(_ context.Context, _ uuid.UUID, listingID uuid.UUID, _ bool) (listingservice.FinalizeResult, error) {
	result := e.finalize
	result.Listing = e.listings[listingID]
	return result, nil
}

func (e *fakeEditor) ImageURLs(context.Context, []domain.Image) map[uuid.UUID]listingports.ImageURLs {
	return map[uuid.UUID]listingports.ImageURLs{}
}

type fakeCatalog struct {
	resolved ports.MakeModel
	known    bool
	checkErr error
}

func (c *fakeCatalog) CheckMakeModel(_ context.Context, makeID, modelID int) (ports.MakeModel, error) {
	if c.checkErr != nil {
		return ports.MakeModel{}, c.checkErr
	}
	return ports.MakeModel{MakeID: makeID, MakeName: "Volkswagen", ModelID: modelID, ModelName: "Golf"}, nil
}

func (c *fakeCatalog) ResolveMakeModel(context.Context, string, string) (ports.MakeModel, bool, error) {
	return c.resolved, c.known, nil
}

type fakePlates struct {
	result transport.LookupResult
	calls  int
}

func (p *fakePlates) Lookup(context.Context, string) transport.LookupResult {
	p.calls++
	return p.result
}

type fixture struct {
	svc      *Service
	editor   *fakeEditor
	catalog  *fakeCatalog
	plates   *fakePlates
	sessions *session.MemoryStore
	owner    uuid.UUID
	sid      string
}

func newFixture() *fixture {
	f := &fixture{
		editor:   &fakeEditor{listings: map[uuid.UUID]*domain.Listing{}},
		catalog:  &fakeCatalog{},
		plates:   &fakePlates{},
		sessions: session.NewMemoryStore(time.Hour),
		owner:    uuid.New(),
		sid:      "session-1",
	}
	f.svc = New(Deps{
		Listings: f.editor,
		Catalog:  f.catalog,
		Plates:   f.plates,
		Sessions: f.sessions,
		Val:      validator.New(),
		Log:      logger.New("test"),
	})
	f.svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) session(t *testing.T) *session.Session {
	t.Helper()
	sess, err := f.sessions.Get(context.Background(), f.sid)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	return sess
}

func (f *fixture) saveSession(t *testing.T, sess *session.Session) {
	t.Helper()
	if err := f.sessions.Save(context.Background(), f.sid, sess); err != nil {
		t.Fatalf("save session: %v", err)
	}
}

// ownedDraft stores a draft listing of the fixture owner and points the
// session at it.
func (f *fixture) ownedDraft(t *testing.T) *domain.Listing {
	t.Helper()
	l := &domain.Listing{ID: uuid.New(), OwnerID: f.owner, Title: "Golf", Type: domain.TypeSale, Status: domain.StatusDraft}
	f.editor.listings[l.ID] = l
	sess := f.session(t)
	sess.ListingInProgress = &l.ID
	f.saveSession(t, sess)
	return l
}
