package runlog

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yarrowhq/ui-verify/logger"
	"github.com/yarrowhq/ui-verify/testutil"
)

// setupTestStore creates a test database and run store for testing.
func setupTestStore(t *testing.T) (*gorm.DB, Store) {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &Run{})

	log := logger.NewTestLogger()
	return db, NewGormStore(db, log)
}

// createRun creates a run with default values.
func createRun(targetURL string, status Status, startedAt time.Time) *Run {
	return &Run{
		TargetURL: targetURL,
		Status:    status,
		StartedAt: startedAt,
	}
}
