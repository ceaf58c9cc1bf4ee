package runlog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yarrowhq/ui-verify/logger"
)

// GormStore implements the Store interface using GORM. It works against
// both the SQLite and MySQL backends opened by Open.
type GormStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormStore creates a new GORM-backed run store.
func NewGormStore(db *gorm.DB, log logger.Logger) *GormStore {
	return &GormStore{
		db:     db,
		logger: log,
	}
}

// Create records a new run in the database.
func (s *GormStore) Create(ctx context.Context, run *Run) error {
	// Ensure default status is set before validation
	if run.Status == "" {
		run.Status = StatusRunning
	}

	if err := run.Validate(); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		s.logger.Error(ctx, "failed to record run", map[string]interface{}{
			"error":      err.Error(),
			"run_id":     run.ID,
			"target_url": run.TargetURL,
		})
		return err
	}

	s.logger.Info(ctx, "run recorded", map[string]interface{}{
		"run_id": run.ID,
		"status": run.Status,
	})

	return nil
}

// GetByID retrieves a run by its ID.
func (s *GormStore) GetByID(ctx context.Context, id uuid.UUID) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&run).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRunNotFound
		}
		s.logger.Error(ctx, "failed to get run by ID", map[string]interface{}{
			"error":  err.Error(),
			"run_id": id,
		})
		return nil, err
	}

	return &run, nil
}

// List retrieves a paginated list of runs, newest first.
func (s *GormStore) List(ctx context.Context, limit, offset int) ([]*Run, error) {
	var runs []*Run
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&runs).Error

	if err != nil {
		s.logger.Error(ctx, "failed to list runs", map[string]interface{}{
			"error":  err.Error(),
			"limit":  limit,
			"offset": offset,
		})
		return nil, err
	}

	return runs, nil
}
