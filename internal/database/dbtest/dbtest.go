// Package dbtest provides migrated in-memory SQLite databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"stockflow/internal/config"
	"stockflow/internal/database"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Config returns a database configuration pointing at a fresh, private
// in-memory SQLite database.
func Config() config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		DSN:         fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		AutoMigrate: true,
	}
}

// New opens a private in-memory SQLite database, applies all migrations and
// closes it when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := Config()
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A single connection keeps the shared-cache database alive and avoids
	// table lock contention between pooled connections.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db, cfg.Driver, "up", zerolog.Nop()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}
