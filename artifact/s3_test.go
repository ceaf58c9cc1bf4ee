package artifact

import (
	"context"
	"testing"
	"time"
)

func TestNewS3Store(t *testing.T) {
	tests := []struct {
		name      string
		bucket    string
		region    string
		wantError bool
	}{
		{
			name:      "valid bucket and region",
			bucket:    "verification-evidence",
			region:    "us-east-1",
			wantError: false,
		},
		{
			name:      "empty bucket",
			bucket:    "",
			region:    "us-east-1",
			wantError: true,
		},
		{
			name:      "empty region",
			bucket:    "verification-evidence",
			region:    "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewS3Store(tt.bucket, tt.region)
			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if store.bucket != tt.bucket {
				t.Errorf("bucket mismatch: got %q, want %q", store.bucket, tt.bucket)
			}
			if store.presignExpiration != 15*time.Minute {
				t.Errorf("default presign expiration should be 15 minutes, got %v", store.presignExpiration)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantError bool
	}{
		{
			name:      "simple key",
			path:      "verification.png",
			wantError: false,
		},
		{
			name:      "nested key",
			path:      "jules-scratch/verification/verification.png",
			wantError: false,
		},
		{
			name:      "empty key",
			path:      "",
			wantError: true,
		},
		{
			name:      "traversal",
			path:      "../outside.png",
			wantError: true,
		},
		{
			name:      "traversal in middle cleans to valid",
			path:      "sub/../verification.png",
			wantError: false,
		},
		{
			name:      "absolute path",
			path:      "/etc/passwd",
			wantError: true,
		},
		{
			name:      "leading dot cleans to valid",
			path:      "./verification.png",
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateKey(tt.path)
			if tt.wantError && err == nil {
				t.Errorf("expected error for key %q but got none", tt.path)
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error for key %q: %v", tt.path, err)
			}
		})
	}
}

func TestIsS3NotFoundError(t *testing.T) {
	if isS3NotFoundError(nil) {
		t.Error("nil error should not be a not-found error")
	}
	if isS3NotFoundError(context.Canceled) {
		t.Error("generic error should not be a not-found error")
	}
}

func TestNew_Factory(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantError bool
	}{
		{
			name:      "local store",
			cfg:       Config{Type: "local", BaseDir: t.TempDir()},
			wantError: false,
		},
		{
			name:      "empty type defaults to local",
			cfg:       Config{BaseDir: t.TempDir()},
			wantError: false,
		},
		{
			name:      "local uppercase",
			cfg:       Config{Type: "LOCAL", BaseDir: t.TempDir()},
			wantError: false,
		},
		{
			name:      "s3 store",
			cfg:       Config{Type: "s3", S3Bucket: "evidence", S3Region: "us-east-1"},
			wantError: false,
		},
		{
			name:      "s3 missing bucket",
			cfg:       Config{Type: "s3", S3Region: "us-east-1"},
			wantError: true,
		},
		{
			name:      "s3 missing region",
			cfg:       Config{Type: "s3", S3Bucket: "evidence"},
			wantError: true,
		},
		{
			name:      "unsupported type",
			cfg:       Config{Type: "gcs"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := New(tt.cfg)
			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if store == nil {
				t.Fatal("expected store but got nil")
			}
		})
	}
}
