// Package ports defines the interfaces the listings domain needs from other
// bounded contexts. Implementations live with their owners (auth, media) and
// are wired in the composition root.
package ports

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// UserInfo is the slice of a user the listings domain cares about.
type UserInfo struct {
	ID    uuid.UUID
	Email string
	Name  string
}

// UserProvider resolves listing owners and contacting users.
type UserProvider interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (UserInfo, error)
}

// UploadedImage is a single file received from a client.
type UploadedImage struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// StoredImage holds the object keys of an original upload and its renditions.
type StoredImage struct {
	OriginalKey  string
	ThumbnailKey string
	PreviewKey   string
	ContentType  string
	Size         int64
}

// ImageURLs are short-lived download links for one stored image.
type ImageURLs struct {
	Original  string
	Thumbnail string
	Preview   string
}

// ImageStore persists listing images and derives their renditions.
type ImageStore interface {
	Store(ctx context.Context, ownerID, listingID uuid.UUID, file UploadedImage) (StoredImage, error)
	Remove(ctx context.Context, image StoredImage) error
	URLs(ctx context.Context, image StoredImage) (ImageURLs, error)
}

// CatalogValidator checks reference data selections. Errors are validation
// errors carrying field details.
type CatalogValidator interface {
	CheckPair(ctx context.Context, makeID, modelID int) error
	CheckOptions(ctx context.Context, optionIDs []int) error
}
