package runlog

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Supported history database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// DBConfig holds history database configuration.
type DBConfig struct {
	Driver string // "sqlite" or "mysql"
	Path   string // SQLite database file, created on first use
	DSN    string // MySQL data source name
}

// Open connects to the history database and migrates the run schema.
// An empty driver selects SQLite.
func Open(cfg DBConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case DriverSQLite, "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("history database path is required")
		}
		if dir := filepath.Dir(cfg.Path); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create history directory: %w", err)
			}
		}
		db, err = gorm.Open(sqlite.Open(cfg.Path), gormCfg)
	case DriverMySQL:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("history database DSN is required")
		}
		db, err = gorm.Open(mysql.Open(cfg.DSN), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported history driver %q", cfg.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return db, nil
}
