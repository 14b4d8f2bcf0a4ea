// Package storage implements the image storage service on top of a
// gocloud.dev blob bucket, so local disk, S3 or GCS buckets are all
// reachable through one URL-configured driver.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"
	"strings"
	"time"

	"shopkart/config"
	"shopkart/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers selected by the configured URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// blobImageStorage stores avatar images in a blob bucket.
type blobImageStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// Params holds dependencies for the image storage, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewBlobImageStorage opens the configured bucket and returns the storage service.
func NewBlobImageStorage(params Params) (service.ImageStorage, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket URL must be configured")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", cfg.BucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing image storage bucket")

			return bucket.Close()
		},
	})

	return newWithBucket(bucket, cfg.PublicBaseURL, params.Logger), nil
}

func newWithBucket(bucket *blob.Bucket, publicBaseURL string, logger *slog.Logger) *blobImageStorage {
	return &blobImageStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Upload writes the image under a date-partitioned random key and returns
// the public URL recorded on the owning record.
func (s *blobImageStorage) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	if content == nil {
		return "", service.ErrNoFile
	}

	key := randomObjectKey(filename)

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentTypeFor(filename),
	})
	if err != nil {
		return "", errors.Wrapf(err, "open writer for %s", key)
	}

	if _, err := io.Copy(writer, content); err != nil {
		_ = writer.Close()

		return "", errors.Wrapf(err, "write object %s", key)
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrapf(err, "commit object %s", key)
	}

	s.logger.Debug("Stored image", slog.String("key", key))

	return s.publicURL(key), nil
}

// Delete removes a previously uploaded image given its public URL.
func (s *blobImageStorage) Delete(ctx context.Context, url string) error {
	key := s.keyFromURL(url)
	if key == "" {
		return errors.Errorf("url %s does not belong to this bucket", url)
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrapf(err, "delete object %s", key)
	}

	return nil
}

func (s *blobImageStorage) publicURL(key string) string {
	if s.publicBaseURL == "" {
		return key
	}

	return s.publicBaseURL + "/" + key
}

func (s *blobImageStorage) keyFromURL(url string) string {
	if s.publicBaseURL == "" {
		return url
	}
	if !strings.HasPrefix(url, s.publicBaseURL+"/") {
		return ""
	}

	return strings.TrimPrefix(url, s.publicBaseURL+"/")
}

// randomObjectKey partitions objects by upload date and never reuses the
// client-supplied name beyond its extension.
func randomObjectKey(filename string) string {
	now := time.Now().UTC()
	ext := strings.ToLower(path.Ext(filename))

	return fmt.Sprintf("avatars/%d/%02d/%02d/%s%s", now.Year(), now.Month(), now.Day(), uuid.New(), ext)
}

func contentTypeFor(filename string) string {
	if contentType := mime.TypeByExtension(strings.ToLower(path.Ext(filename))); contentType != "" {
		return contentType
	}

	return "application/octet-stream"
}

// Module provides the image storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewBlobImageStorage),
)
