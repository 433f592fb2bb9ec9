package migrator

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/ghuser/dune-crafting-api/pkg/database"
	"github.com/ghuser/dune-crafting-api/pkg/logger"
)

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// RunMigrations applies all pending goose migrations for the database's
// dialect. files must contain one directory per dialect ("sqlite",
// "postgres") holding the *.sql migrations. Already-applied migrations are
// skipped, so this is safe to call on every startup.
func RunMigrations(ctx context.Context, db *database.Database, files fs.FS, log logger.Logger) error {
	dir, err := dialectDir(db.Dialect())
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(files)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&gooseLogger{log: log})

	if err := goose.SetDialect(string(db.Dialect())); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db.DB(), dir); err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}
	return nil
}

func dialectDir(d database.Dialect) (string, error) {
	switch d {
	case database.DialectSQLite:
		return "sqlite", nil
	case database.DialectPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("no migrations for dialect %q", d)
	}
}

// gooseLogger routes goose output through the project logger.
type gooseLogger struct{ log logger.Logger }

func (g *gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info("migrate: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf is only reached by goose's CLI helpers; migration errors are returned.
func (g *gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Error("migrate: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}
