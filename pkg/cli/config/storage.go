package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/service/storage"
	"github.com/secmon-lab/themis/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Storage holds CLI flags for the evidence blob store configuration
type Storage struct {
	backend string
	bucket  string
	prefix  string
}

// Flags returns CLI flags for storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-backend",
			Usage:       "Evidence storage backend (gcs or memory)",
			Value:       "gcs",
			Sources:     cli.EnvVars("THEMIS_STORAGE_BACKEND"),
			Destination: &s.backend,
		},
		&cli.StringFlag{
			Name:        "storage-bucket",
			Usage:       "GCS bucket for evidence attachments (required when using gcs backend)",
			Sources:     cli.EnvVars("THEMIS_STORAGE_BUCKET"),
			Destination: &s.bucket,
		},
		&cli.StringFlag{
			Name:        "storage-prefix",
			Usage:       "Object key prefix inside the bucket",
			Sources:     cli.EnvVars("THEMIS_STORAGE_PREFIX"),
			Destination: &s.prefix,
		},
	}
}

// Configure initializes and returns the blob store. The caller is
// responsible for calling Close() on the returned client.
func (s *Storage) Configure(ctx context.Context) (interfaces.StorageClient, error) {
	switch s.backend {
	case "gcs":
		if s.bucket == "" {
			return nil, goerr.New("storage-bucket is required when using gcs backend")
		}
		var opts []storage.GCSOption
		if s.prefix != "" {
			opts = append(opts, storage.WithObjectPrefix(s.prefix))
		}
		client, err := storage.NewGCS(ctx, s.bucket, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize GCS storage")
		}
		logging.Default().Info("Using GCS evidence storage",
			"bucket", s.bucket,
			"prefix", s.prefix,
		)
		return client, nil

	case "memory":
		logging.Default().Info("Using in-memory evidence storage (development mode)")
		return storage.NewMemory(), nil

	default:
		return nil, goerr.New("invalid storage backend", goerr.V("backend", s.backend))
	}
}
