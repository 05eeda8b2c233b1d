package interfaces

import (
	"context"
	"io"
	"time"
)

// StorageClient abstracts the blob store holding evidence attachments.
type StorageClient interface {
	// Put writes the object and returns the number of bytes stored.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error)
	// SignedURL returns a time-limited download URL for the object.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	Close() error
}
