package storage

import (
	"context"
	"io"
)

// UploadOptions conveys upload destination metadata.
type UploadOptions struct {
	Bucket      string
	KeyPrefix   string
	ContentType string
}

// Service stores profile pictures in remote object storage. Upload returns
// the URL that ends up in the profile's picture field.
type Service interface {
	UploadPicture(ctx context.Context, key string, body io.Reader, opts UploadOptions) (string, error)
	DeletePicture(ctx context.Context, bucket, key string) error
}
