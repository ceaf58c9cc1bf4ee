package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Store keeps artifacts in an S3 bucket so evidence from CI runs
// survives the machine that produced it.
type S3Store struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	presignExpiration time.Duration
}

// NewS3Store creates a new S3 artifact store. Credentials come from
// the AWS SDK's default chain.
func NewS3Store(bucket, region string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("S3 bucket name cannot be empty")
	}
	if region == "" {
		return nil, fmt.Errorf("S3 region cannot be empty")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	return &S3Store{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            bucket,
		presignExpiration: 15 * time.Minute,
	}, nil
}

// Save uploads the artifact at the given key, replacing any previous
// object, and returns the number of bytes uploaded. The artifact is
// buffered in memory first; screenshots are small and the size is part
// of the recorded evidence.
func (s *S3Store) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	if err := validateKey(path); err != nil {
		return 0, err
	}
	key := filepath.ToSlash(filepath.Clean(path))

	data, err := io.ReadAll(reader)
	if err != nil {
		return 0, fmt.Errorf("failed to read artifact: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upload artifact to S3: %w", err)
	}

	return int64(len(data)), nil
}

// Exists checks if an artifact exists at the given key.
func (s *S3Store) Exists(ctx context.Context, path string) (bool, error) {
	if err := validateKey(path); err != nil {
		return false, err
	}
	key := filepath.ToSlash(filepath.Clean(path))

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check S3 artifact existence: %w", err)
	}

	return true, nil
}

// URL returns a presigned GET URL for an existing artifact.
func (s *S3Store) URL(ctx context.Context, path string) (string, error) {
	if err := validateKey(path); err != nil {
		return "", err
	}
	key := filepath.ToSlash(filepath.Clean(path))

	exists, err := s.Exists(ctx, path)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrNotFound
	}

	presignResult, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.presignExpiration
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return presignResult.URL, nil
}

// validateKey rejects keys that would escape a filesystem mirror of the
// bucket layout, keeping key rules consistent with LocalStore paths.
func validateKey(path string) error {
	if path == "" {
		return fmt.Errorf("%w: path cannot be empty", ErrInvalidPath)
	}

	cleanPath := filepath.Clean(path)
	if strings.HasPrefix(cleanPath, "..") {
		return fmt.Errorf("%w: path escapes base directory", ErrInvalidPath)
	}
	if filepath.IsAbs(cleanPath) {
		return fmt.Errorf("%w: absolute paths not allowed", ErrInvalidPath)
	}

	return nil
}

// isS3NotFoundError checks if an error is an S3 "not found" error.
func isS3NotFoundError(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
}
