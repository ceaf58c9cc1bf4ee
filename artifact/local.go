package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when a requested artifact does not exist.
	ErrNotFound = errors.New("artifact not found")

	// ErrInvalidPath is returned when a path is empty or escapes the base directory.
	ErrInvalidPath = errors.New("invalid artifact path")
)

// LocalStore keeps artifacts on the local filesystem under a base
// directory. The default base is the working directory, so the standard
// artifact path lands at jules-scratch/verification/verification.png
// relative to wherever the verifier runs.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a local artifact store rooted at baseDir,
// creating the directory if needed. An empty baseDir means the current
// working directory.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if baseDir == "" {
		baseDir = "."
	}
	baseDir = filepath.Clean(baseDir)

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artifact base directory: %w", err)
	}

	return &LocalStore{
		baseDir: baseDir,
	}, nil
}

// Save writes the artifact at the given path, overwriting any previous
// artifact there. A failed write leaves no partial file behind.
func (s *LocalStore) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create artifact directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create artifact file: %w", err)
	}

	written, err := io.Copy(file, reader)
	if err != nil {
		file.Close()
		os.Remove(fullPath)
		return 0, fmt.Errorf("failed to write artifact: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(fullPath)
		return 0, fmt.Errorf("failed to finalize artifact: %w", err)
	}

	return written, nil
}

// Exists checks if an artifact exists at the given path.
func (s *LocalStore) Exists(ctx context.Context, path string) (bool, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check artifact existence: %w", err)
	}

	return true, nil
}

// URL returns the absolute filesystem path of an existing artifact.
func (s *LocalStore) URL(ctx context.Context, path string) (string, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return "", err
	}

	exists, err := s.Exists(ctx, path)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrNotFound
	}

	abs, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve artifact path: %w", err)
	}
	return abs, nil
}

// resolve validates the path and joins it with the base directory,
// rejecting anything that escapes it.
func (s *LocalStore) resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: path cannot be empty", ErrInvalidPath)
	}

	cleanPath := filepath.Clean(path)
	fullPath := filepath.Join(s.baseDir, cleanPath)

	relPath, err := filepath.Rel(s.baseDir, fullPath)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return "", fmt.Errorf("%w: path escapes base directory", ErrInvalidPath)
	}

	return fullPath, nil
}
