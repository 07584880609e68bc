// Package media stores listing images in object storage together with
// their thumbnail and preview renditions.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"autotradespot_backend/internal/adapters/storage"
	"autotradespot_backend/internal/listings/ports"
	"autotradespot_backend/platform/apperr"
	"autotradespot_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	renditionContentType = "image/jpeg"
	msgInvalidImage      = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
)

// Store implements ports.ImageStore on top of an S3-compatible bucket.
type Store struct {
	storage storage.StorageService
	bucket  string
	log     *logger.Logger
}

func NewStore(svc storage.StorageService, bucket string, log *logger.Logger) *Store {
	return &Store{storage: svc, bucket: bucket, log: log}
}

// Store validates and processes an upload, then writes the original and
// both renditions under <owner>/<listing>. A partial upload is rolled back.
func (s *Store) Store(ctx context.Context, ownerID, listingID uuid.UUID, file ports.UploadedImage) (ports.StoredImage, error) {
	if err := s.storage.ValidateContentType(file.ContentType); err != nil {
		return ports.StoredImage{}, imageError(err.Error())
	}
	if err := s.storage.ValidateFileSize(file.Size); err != nil {
		return ports.StoredImage{}, imageError(err.Error())
	}

	original, err := io.ReadAll(file.Reader)
	if err != nil {
		return ports.StoredImage{}, apperr.Wrap(apperr.KindBadRequest, "failed to read upload", err)
	}
	processed, err := Process(original)
	if err != nil {
		return ports.StoredImage{}, imageError(msgInvalidImage)
	}

	folder := ownerID.String() + "/" + listingID.String()
	base := strings.TrimSuffix(path.Base(file.FileName), path.Ext(file.FileName))

	stored := ports.StoredImage{ContentType: file.ContentType, Size: int64(len(original))}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		key, err := s.storage.UploadFile(gctx, s.bucket, folder, file.FileName, file.ContentType, bytes.NewReader(original), int64(len(original)))
		stored.OriginalKey = key
		return err
	})
	g.Go(func() error {
		key, err := s.upload(gctx, folder, base, Thumbnail, processed.Thumbnail)
		stored.ThumbnailKey = key
		return err
	})
	g.Go(func() error {
		key, err := s.upload(gctx, folder, base, Preview, processed.Preview)
		stored.PreviewKey = key
		return err
	})

	if err := g.Wait(); err != nil {
		if rmErr := s.Remove(context.WithoutCancel(ctx), stored); rmErr != nil {
			s.log.WithContext(ctx).SoftFailure("media.store.rollback", folder, rmErr)
		}
		return ports.StoredImage{}, apperr.Wrap(apperr.KindInternal, "failed to store image", err)
	}
	return stored, nil
}

func (s *Store) upload(ctx context.Context, folder, base string, r Rendition, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%s.jpg", base, r.Name)
	return s.storage.UploadFile(ctx, s.bucket, folder, name, renditionContentType, bytes.NewReader(data), int64(len(data)))
}

// Remove deletes every stored object of an image. Missing keys are skipped.
func (s *Store) Remove(ctx context.Context, image ports.StoredImage) error {
	var errs []error
	for _, key := range []string{image.OriginalKey, image.ThumbnailKey, image.PreviewKey} {
		if key == "" {
			continue
		}
		if err := s.storage.DeleteObject(ctx, s.bucket, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// URLs presigns download links for the original and both renditions.
func (s *Store) URLs(ctx context.Context, image ports.StoredImage) (ports.ImageURLs, error) {
	var urls ports.ImageURLs
	for _, item := range []struct {
		key  string
		dest *string
	}{
		{image.OriginalKey, &urls.Original},
		{image.ThumbnailKey, &urls.Thumbnail},
		{image.PreviewKey, &urls.Preview},
	} {
		if item.key == "" {
			continue
		}
		presigned, err := s.storage.GenerateDownloadURL(ctx, s.bucket, item.key)
		if err != nil {
			return ports.ImageURLs{}, err
		}
		*item.dest = presigned.URL
	}
	return urls, nil
}

func imageError(message string) error {
	return apperr.Field("image", message)
}

var _ ports.ImageStore = (*Store)(nil)
