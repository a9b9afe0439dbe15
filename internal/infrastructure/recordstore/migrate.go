package recordstore

import (
	"embed"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embedMigrations embed.FS

// schemaVersion is the last migration that only creates structure; later
// versions load the reference catalog.
const schemaVersion = 1

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// Migrate applies the embedded migrations for dialect. With seed=false only
// the schema is created and the catalog tables stay empty.
func Migrate(db *sqlx.DB, dialect Dialect, seed bool) error {
	dir, gooseDialect, err := migrationsFor(dialect)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(gooseDialect)); err != nil {
		return fmt.Errorf("setting dialect for migrations : %w", err)
	}

	if !seed {
		if err := goose.UpTo(db.DB, dir, schemaVersion); err != nil {
			return fmt.Errorf("applying schema migration : %w", err)
		}
		return nil
	}

	if err := goose.Up(db.DB, dir); err != nil {
		return fmt.Errorf("applying migration : %w", err)
	}
	return nil
}

func migrationsFor(dialect Dialect) (string, goose.Dialect, error) {
	switch dialect {
	case DialectPostgres:
		return "migrations/postgres", goose.DialectPostgres, nil
	case DialectSQLite:
		return "migrations/sqlite", goose.DialectSQLite3, nil
	default:
		return "", "", fmt.Errorf("no migrations for dialect %q", dialect)
	}
}
