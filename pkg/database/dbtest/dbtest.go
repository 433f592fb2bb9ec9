// Package dbtest provides a migrated, file-backed SQLite database for tests.
package dbtest

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/ghuser/dune-crafting-api/migrations/catalog"
	"github.com/ghuser/dune-crafting-api/pkg/database"
	"github.com/ghuser/dune-crafting-api/pkg/logger"
	"github.com/ghuser/dune-crafting-api/pkg/migrator"
)

// NewTestDB creates a fresh SQLite database under t.TempDir() with the
// catalog schema applied. It is closed when the test ends.
func NewTestDB(t *testing.T) *database.Database {
	t.Helper()
	return OpenAt(t, filepath.Join(t.TempDir(), "catalog.db"))
}

// OpenAt opens (or creates) the SQLite file at path and applies migrations.
// Opening the same path twice simulates a process restart.
func OpenAt(t *testing.T, path string) *database.Database {
	t.Helper()

	ctx := context.Background()
	log := logger.NewWithWriter(io.Discard, "error")

	db, err := database.NewPool(ctx, "sqlite://"+path, log)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := migrator.RunMigrations(ctx, db, catalog.MigrationsFS, log); err != nil {
		_ = db.Close()
		t.Fatalf("migrating test database: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}
