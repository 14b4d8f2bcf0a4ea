package service

import (
	"context"
	"errors"
	"io"
)

// ErrNoFile is returned when an upload is requested without a file attached.
var ErrNoFile = errors.New("no file supplied for upload")

// ImageStorage delegates binary image uploads to an external bucket.
// Registration depends on it: a user record is only created after the
// avatar upload yielded a usable public URL.
type ImageStorage interface {
	// Upload stores the image content under a generated key and returns the
	// public URL of the stored object.
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)

	// Delete removes a previously stored object by its public URL. Used for
	// best-effort cleanup when record creation fails after an upload.
	Delete(ctx context.Context, url string) error
}
