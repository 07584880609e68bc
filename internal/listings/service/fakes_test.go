package service

import (
	"context"
	"sync"
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

type fakeRepo struct {
	listings   map[uuid.UUID]*domain.Listing
	images     map[uuid.UUID]domain.Image
	favourites map[uuid.UUID]map[uuid.UUID]bool
	views      map[uuid.UUID]int
	detailsErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		listings:   map[uuid.UUID]*domain.Listing{},
		images:     map[uuid.UUID]domain.Image{},
		favourites: map[uuid.UUID]map[uuid.UUID]bool{},
		views:      map[uuid.UUID]int{},
	}
}

func (r *fakeRepo) put(l domain.Listing) *domain.Listing {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.listings[l.ID] = &l
	return &l
}

func (r *fakeRepo) Get(_ context.Context, id uuid.UUID) (*domain.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, apperr.NotFound("listing not found")
	}
	cp := *l
	cp.Images = append([]domain.Image(nil), l.Images...)
	return &cp, nil
}

func (r *fakeRepo) ListSummaries(context.Context, repository.Filter) ([]domain.Listing, error) {
	out := make([]domain.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		out = append(out, *l)
	}
	return out, nil
}

func (r *fakeRepo) ListImages(_ context.Context, listingID uuid.UUID) ([]domain.Image, error) {
	return r.listings[listingID].Images, nil
}

func (r *fakeRepo) GetImage(_ context.Context, imageID uuid.UUID) (domain.Image, error) {
	img, ok := r.images[imageID]
	if !ok {
		return domain.Image{}, apperr.NotFound("image not found")
	}
	return img, nil
}

func (r *fakeRepo) IsFavourite(_ context.Context, listingID, userID uuid.UUID) (bool, error) {
	return r.favourites[listingID][userID], nil
}

func (r *fakeRepo) Create(_ context.Context, ownerID uuid.UUID, f repository.ListingFields) (*domain.Listing, error) {
	l := r.put(domain.Listing{
		OwnerID:       ownerID,
		Title:         f.Title,
		Description:   f.Description,
		AvailableFrom: f.AvailableFrom,
		Type:          f.Type,
		Status:        domain.StatusDraft,
		CreatedAt:     time.Now(),
	})
	cp := *l
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, id uuid.UUID, f repository.ListingFields) error {
	l, ok := r.listings[id]
	if !ok {
		return apperr.NotFound("listing not found")
	}
	l.Title, l.Description, l.AvailableFrom, l.Type = f.Title, f.Description, f.AvailableFrom, f.Type
	return nil
}

func (r *fakeRepo) UpsertPricing(_ context.Context, id uuid.UUID, p domain.Pricing) error {
	r.listings[id].Pricing = p
	return nil
}

func (r *fakeRepo) UpsertDetails(_ context.Context, id uuid.UUID, d domain.CarDetails, _ []int) error {
	if r.detailsErr != nil {
		return r.detailsErr
	}
	r.listings[id].Details = &d
	return nil
}

func (r *fakeRepo) AddImage(_ context.Context, img domain.Image) (domain.Image, error) {
	img.ID = uuid.New()
	r.images[img.ID] = img
	l := r.listings[img.ListingID]
	l.Images = append(l.Images, img)
	return img, nil
}

func (r *fakeRepo) DeleteImage(_ context.Context, imageID uuid.UUID) error {
	img := r.images[imageID]
	delete(r.images, imageID)
	l := r.listings[img.ListingID]
	kept := l.Images[:0]
	for _, i := range l.Images {
		if i.ID != imageID {
			kept = append(kept, i)
		}
	}
	l.Images = kept
	return nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to domain.Status) error {
	l := r.listings[id]
	if l.Status != from {
		return apperr.Conflict("status changed concurrently")
	}
	l.Status = to
	return nil
}

func (r *fakeRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	r.views[id]++
	return nil
}

func (r *fakeRepo) ToggleFavourite(_ context.Context, listingID, userID uuid.UUID) (bool, error) {
	if r.favourites[listingID] == nil {
		r.favourites[listingID] = map[uuid.UUID]bool{}
	}
	r.favourites[listingID][userID] = !r.favourites[listingID][userID]
	return r.favourites[listingID][userID], nil
}

func (r *fakeRepo) DeletePermanent(_ context.Context, id uuid.UUID) error {
	delete(r.listings, id)
	return nil
}

type fakeUsers map[uuid.UUID]ports.UserInfo

func (f fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (ports.UserInfo, error) {
	u, ok := f[id]
	if !ok {
		return ports.UserInfo{}, apperr.NotFound("user not found")
	}
	return u, nil
}

type fakeImages struct {
	removed []string
}

func (f *fakeImages) Store(_ context.Context, ownerID, listingID uuid.UUID, img ports.UploadedImage) (ports.StoredImage, error) {
	key := ownerID.String() + "/" + listingID.String() + "/" + img.FileName
	return ports.StoredImage{OriginalKey: key, ThumbnailKey: key + ".thumb", PreviewKey: key + ".preview", ContentType: img.ContentType, Size: img.Size}, nil
}

func (f *fakeImages) Remove(_ context.Context, img ports.StoredImage) error {
	f.removed = append(f.removed, img.OriginalKey)
	return nil
}

func (f *fakeImages) URLs(_ context.Context, img ports.StoredImage) (ports.ImageURLs, error) {
	return ports.ImageURLs{Original: "http://img/" + img.OriginalKey}, nil
}

type fakeCatalog struct {
	pairErr error
}

func (f fakeCatalog) CheckPair(context.Context, int, int) error { return f.pairErr }
func (f fakeCatalog) CheckOptions(context.Context, []int) error { return nil }

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

type fixture struct {
	svc      *Service
	repo     *fakeRepo
	images   *fakeImages
	bus      *recordingBus
	sessions *session.MemoryStore
	owner    uuid.UUID
	visitor  uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		repo:     newFakeRepo(),
		images:   &fakeImages{},
		bus:      &recordingBus{},
		sessions: session.NewMemoryStore(time.Hour),
		owner:    uuid.New(),
		visitor:  uuid.New(),
	}
	f.svc = New(Deps{
		Repo: f.repo,
		Users: fakeUsers{
			f.owner:   {ID: f.owner, Email: "owner@example.com", Name: "Olga"},
			f.visitor: {ID: f.visitor, Email: "visitor@example.com", Name: "Victor"},
		},
		Images:   f.images,
		Catalog:  fakeCatalog{},
		Sessions: f.sessions,
		EventBus: f.bus,
		Val:      validator.New(),
		Log:      logger.New("test"),
	})
	f.svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

// completeListing returns an owner's listing that passes the readiness gate.
func (f *fixture) completeListing(status domain.Status) *domain.Listing {
	return f.repo.put(domain.Listing{
		OwnerID: f.owner,
		Title:   "Volkswagen Golf",
		Type:    domain.TypeSale,
		Status:  status,
		Pricing: domain.SalePricing{PriceType: "F", Price: domain.MoneyFromEuros(15000)},
		Details: &domain.CarDetails{Transmission: "MANUAL", FuelType: "B", BodyType: "C", Condition: "U", ManufactureYear: 2018, Mileage: 90000},
		Images:  []domain.Image{{ID: uuid.New(), OriginalKey: "a.jpg"}},
	})
}
