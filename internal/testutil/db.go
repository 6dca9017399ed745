package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
)

// NewTestDB opens an isolated in-memory database with the full schema
// auto-migrated. Each call gets its own database; nothing leaks between
// tests and nothing needs cleanup.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// :memory: gives every connection its own database; cap the pool so
	// concurrent queries share the one schema.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&domain.Rep{},
		&domain.Deal{},
		&domain.DealCommission{},
		&domain.DealStatusHistory{},
		&domain.DealFile{},
		&domain.Notification{},
		&domain.AuditLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
