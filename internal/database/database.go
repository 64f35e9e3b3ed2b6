package database

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/quotes/internal/logging"
)

type Database struct {
	DB   *gorm.DB
	path string
}

// DSN returns the sqlite connection string used by the application pool.
// Immediate transactions make concurrent writers queue on the busy timeout
// instead of failing on a read-to-write lock upgrade.
func DSN(dbPath string) string {
	return dbPath + "?_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate"
}

// NewDatabase applies pending migrations and opens the connection pool.
func NewDatabase(dbPath string, logger *slog.Logger) (*Database, error) {
	version, err := Migrate(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(DSN(dbPath)), &gorm.Config{
		Logger:                 logging.NewGormLogger(logger),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("database initialized", "path", dbPath, "schema_version", version)

	return &Database{DB: db, path: dbPath}, nil
}

func (d *Database) Path() string {
	return d.path
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
