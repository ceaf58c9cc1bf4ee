package runlog

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for run persistence operations.
type Store interface {
	// Create records a new run in the store.
	Create(ctx context.Context, run *Run) error

	// GetByID retrieves a run by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*Run, error)

	// List retrieves a paginated list of runs, newest first.
	List(ctx context.Context, limit, offset int) ([]*Run, error)
}
