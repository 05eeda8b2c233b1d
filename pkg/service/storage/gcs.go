package storage

import (
	"context"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/utils/safe"
)

// GCS stores evidence attachments in a Google Cloud Storage bucket.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.StorageClient = &GCS{}

type GCSOption func(*GCS)

// WithObjectPrefix prefixes every object key, used to isolate environments
// sharing one bucket.
func WithObjectPrefix(prefix string) GCSOption {
	return func(g *GCS) {
		g.prefix = prefix
	}
}

func NewGCS(ctx context.Context, bucket string, opts ...GCSOption) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	g := &GCS{
		client: client,
		bucket: bucket,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *GCS) objectKey(key string) string {
	if g.prefix != "" {
		return g.prefix + "/" + key
	}
	return key
}

func (g *GCS) Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error) {
	obj := g.client.Bucket(g.bucket).Object(g.objectKey(key))
	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	n, err := io.Copy(w, r)
	if err != nil {
		safe.Close(ctx, w)
		return 0, goerr.Wrap(err, "failed to write object", goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return 0, goerr.Wrap(err, "failed to finalize object", goerr.V("key", key))
	}

	return n, nil
}

func (g *GCS) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	url, err := g.client.Bucket(g.bucket).SignedURL(g.objectKey(key), &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(ttl),
		Scheme:  storage.SigningSchemeV4,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign URL", goerr.V("key", key))
	}
	return url, nil
}

func (g *GCS) Delete(ctx context.Context, key string) error {
	if err := g.client.Bucket(g.bucket).Object(g.objectKey(key)).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete object", goerr.V("key", key))
	}
	return nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
