// Package artifact persists verification evidence: the screenshots a
// run produces, stored locally by default or in S3 when runs happen in
// shared CI and the evidence must outlive the machine.
package artifact

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Store defines the interface for storing verification evidence.
type Store interface {
	// Save writes the artifact read from reader at the given relative
	// path, replacing any previous artifact there, and returns the
	// number of bytes written.
	Save(ctx context.Context, path string, reader io.Reader) (int64, error)

	// Exists reports whether an artifact is present at the given path.
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns a location for retrieving the artifact: an absolute
	// filesystem path for local storage, a presigned URL for S3.
	URL(ctx context.Context, path string) (string, error)
}

// Config selects and parameterizes a Store implementation.
type Config struct {
	Type            string        // "local" or "s3"
	BaseDir         string        // local: directory artifact paths resolve under
	S3Bucket        string        // s3: bucket name
	S3Region        string        // s3: AWS region
	S3PresignExpiry time.Duration // s3: presigned URL expiration
}

// New creates a Store based on configuration. An empty type means local.
func New(cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "local":
		return NewLocalStore(cfg.BaseDir)

	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("bucket is required for S3 artifact storage")
		}
		if cfg.S3Region == "" {
			return nil, fmt.Errorf("region is required for S3 artifact storage")
		}

		store, err := NewS3Store(cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 artifact storage: %w", err)
		}
		if cfg.S3PresignExpiry > 0 {
			store.presignExpiration = cfg.S3PresignExpiry
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported artifact storage type: %s", cfg.Type)
	}
}
