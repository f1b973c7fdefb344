package asset

import (
	"context"

	appErrors "github.com/MohdOwais22/subaku-backend/pkg/errors"
)

// Image references an externally stored asset. PublicID is the only handle
// needed to delete it.
type Image struct {
	PublicID string `json:"public_id" bson:"public_id"`
	URL      string `json:"url" bson:"url"`
}

// Folders used by the storefront.
const (
	FolderProducts = "products"
	FolderAvatars  = "avatars"
)

// UploadInput describes a single upload. Data is whatever the client sent
// (a data URI or a remote URL) and is handed to the store untouched.
type UploadInput struct {
	Data   string
	Folder string
	Width  int
	Crop   string

	// AutoOptimize lets the store pick quality and delivery format.
	AutoOptimize bool
}

// Store is the object store port.
type Store interface {
	Upload(ctx context.Context, input UploadInput) (*Image, error)
	Delete(ctx context.Context, publicID string) error
}

var (
	ErrRateLimited     = appErrors.ErrRateLimited
	ErrPayloadTooLarge = appErrors.ErrPayloadTooLarge
	ErrUpstream        = appErrors.ErrUpstream
)
