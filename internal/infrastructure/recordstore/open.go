package recordstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/clients/postgres"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/clients/sqlite"
	"github.com/chandrabs25/Andaman-travel-website/pkg/config"
)

// Open connects to the configured engine, applies migrations and returns a
// ready Store. Without a PostgreSQL driver configured it falls back to the
// embedded SQLite engine.
func Open(ctx context.Context, cfg *config.DatabaseConfig, opts ...Option) (*Store, error) {
	var (
		db      *sqlx.DB
		dialect Dialect
		err     error
	)

	if cfg.UsesPostgres() {
		db, err = postgres.Open(ctx, cfg)
		dialect = DialectPostgres
	} else {
		db, err = sqlite.Open(cfg.SQLitePath)
		dialect = DialectSQLite
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db, dialect, cfg.Seed); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s store: %w", dialect, err)
	}

	return New(db, dialect, opts...), nil
}

// IsUniqueViolation reports whether err came from a unique constraint on
// either engine.
func IsUniqueViolation(err error) bool {
	return postgres.IsUniqueViolation(err) || sqlite.IsUniqueViolation(err)
}
