package storage

import (
	"context"
	"io"

	"github.com/frahmantamala/hr-management/internal"
)

// MaxUploadBytes is the size cap for uploaded photos.
const MaxUploadBytes = 5 << 20 // 5MB

var allowedExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ExtensionFor maps an allowed image content type to a file extension.
// The second return is false for disallowed types.
func ExtensionFor(contentType string) (string, bool) {
	ext, ok := allowedExtensions[contentType]
	return ext, ok
}

// ErrUnsupportedType rejects uploads outside the image allow-list.
var ErrUnsupportedType = internal.NewValidationError("Only JPEG, PNG, and WebP images are allowed")

// ErrTooLarge rejects uploads above MaxUploadBytes.
var ErrTooLarge = internal.NewValidationError("Photo must be at most 5MB")

// Storage persists an uploaded photo and returns a stable reference string:
// a server-relative path for local storage, an absolute URL for remote
// object storage. Only the reference is ever stored in the directory.
type Storage interface {
	Save(ctx context.Context, contentType string, content io.Reader) (string, error)
}
