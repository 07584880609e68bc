package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"autotradespot_backend/internal/listings/domain"
	listingports "autotradespot_backend/internal/listings/ports"
	"autotradespot_backend/internal/listings/repository"
	listingservice "autotradespot_backend/internal/listings/service"
	"autotradespot_backend/internal/session"
	"autotradespot_backend/internal/wizard/service"
	"autotradespot_backend/internal/wizard/transport"
	"autotradespot_backend/platform/apperr"
	"autotradespot_backend/platform/httpkit"
	"autotradespot_backend/platform/logger"
	"autotradespot_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type stubEditor struct {
	listing *domain.Listing
	uploads int
}

func (e *stubEditor) GetOwned(_ context.Context, id, ownerID uuid.UUID) (*domain.Listing, error) {
	if e.listing == nil || e.listing.ID != id || e.listing.OwnerID != ownerID {
		return nil, apperr.NotFound("listing not found")
	}
	return e.listing, nil
}

func (e *stubEditor) SaveListing(context.Context, uuid.UUID, *uuid.UUID, repository.ListingFields, domain.Pricing) (*domain.Listing, error) {
	return e.listing, nil
}

func (e *stubEditor) SaveDetails(context.Context, uuid.UUID, uuid.UUID, domain.CarDetails, []int) error {
	return nil
}

func (e *stubEditor) AddImages(_ context.Context, _ uuid.UUID, listingID uuid.UUID, files []listingports.UploadedImage) ([]domain.Image, error) {
	e.uploads++
	added := make([]domain.Image, 0, len(files))
	for _, f := range files {
		added = append(added, domain.Image{ID: uuid.New(), ListingID: listingID, FileName: f.FileName})
	}
	return added, nil
}

func (e *stubEditor) DeleteImage(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (e *stubEditor) Finalize(context.Context, uuid.UUID, uuid.UUID, bool) (listingservice.FinalizeResult, error) {
	return listingservice.FinalizeResult{}, nil
}

func (e *stubEditor) ImageURLs(context.Context, []domain.Image) map[uuid.UUID]listingports.ImageURLs {
	return map[uuid.UUID]listingports.ImageURLs{}
}

func newRouter(t *testing.T, editor *stubEditor, owner uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewMemoryStore(time.Hour)
	sess := &session.Session{ListingInProgress: &editor.listing.ID}
	if err := sessions.Save(context.Background(), "session-1", sess); err != nil {
		t.Fatalf("save session: %v", err)
	}

	svc := service.New(service.Deps{
		Listings: editor,
		Sessions: sessions,
		Val:      validator.New(),
		Log:      logger.New("test"),
	})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(httpkit.ContextUserIDKey, owner)
		c.Set(session.ContextSessionIDKey, "session-1")
		c.Next()
	})
	New(svc).RegisterRoutes(r.Group("/wizard"))
	return r
}

func TestAddImagesAcceptsEmptyUpload(t *testing.T) {
	owner := uuid.New()
	existing := domain.Image{ID: uuid.New(), FileName: "front.jpg"}
	editor := &stubEditor{listing: &domain.Listing{
		ID:      uuid.New(),
		OwnerID: owner,
		Type:    domain.TypeSale,
		Status:  domain.StatusDraft,
		Images:  []domain.Image{existing},
	}}
	r := newRouter(t, editor, owner)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/wizard/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp transport.ImagesStepResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Images) != 1 || resp.Images[0].ID != existing.ID.String() {
		t.Fatalf("expected the existing image, got %+v", resp.Images)
	}
	if editor.uploads != 0 {
		t.Fatalf("expected no upload for an empty form, got %d", editor.uploads)
	}
}

func TestAddImagesUploadsFiles(t *testing.T) {
	owner := uuid.New()
	editor := &stubEditor{listing: &domain.Listing{ID: uuid.New(), OwnerID: owner, Type: domain.TypeSale, Status: domain.StatusDraft}}
	r := newRouter(t, editor, owner)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(imageField, "back.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("jpeg")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/wizard/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if editor.uploads != 1 {
		t.Fatalf("expected one upload call, got %d", editor.uploads)
	}
}
