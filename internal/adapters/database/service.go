// Package database is the data access layer: one typed method per entity
// operation, each building its statement with goqu and running it through the
// record store.
package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/repositories"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/recordstore"
	apperrors "github.com/chandrabs25/Andaman-travel-website/pkg/errors"
)

// Service implements every repository over a single record store.
type Service struct {
	store   *recordstore.Store
	dialect goqu.DialectWrapper
	now     func() time.Time
}

var (
	_ repositories.UserRepository     = (*Service)(nil)
	_ repositories.IslandRepository   = (*Service)(nil)
	_ repositories.ServiceRepository  = (*Service)(nil)
	_ repositories.PackageRepository  = (*Service)(nil)
	_ repositories.BookingRepository  = (*Service)(nil)
	_ repositories.ReviewRepository   = (*Service)(nil)
	_ repositories.FerryRepository    = (*Service)(nil)
	_ repositories.ProviderRepository = (*Service)(nil)
)

// NewService creates a data access service on store.
func NewService(store *recordstore.Store) *Service {
	return &Service{
		store:   store,
		dialect: goqu.Dialect(string(store.Dialect())),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Store returns the underlying record store.
func (s *Service) Store() *recordstore.Store {
	return s.store
}

type sqlBuilder interface {
	ToSQL() (string, []interface{}, error)
}

func (s *Service) statement(b sqlBuilder) (*recordstore.Statement, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return s.store.Prepare(query).Bind(args...), nil
}

// get scans one row into dest and reports whether it matched.
func (s *Service) get(ctx context.Context, b sqlBuilder, dest any, what string) (bool, error) {
	st, err := s.statement(b)
	if err != nil {
		return false, err
	}
	found, err := st.First(ctx, dest)
	if err != nil {
		return false, apperrors.NewInternalError("failed to get "+what, err)
	}
	return found, nil
}

func (s *Service) list(ctx context.Context, b sqlBuilder, dest any, what string) error {
	st, err := s.statement(b)
	if err != nil {
		return err
	}
	if err := st.All(ctx, dest); err != nil {
		return apperrors.NewInternalError("failed to list "+what, err)
	}
	return nil
}

func (s *Service) exec(ctx context.Context, b sqlBuilder, what string) (repositories.WriteResult, error) {
	st, err := s.statement(b)
	if err != nil {
		return repositories.WriteResult{}, err
	}
	res, err := st.Run(ctx)
	if err != nil {
		if recordstore.IsUniqueViolation(err) {
			return repositories.WriteResult{}, apperrors.NewConflictError(what + " already exists")
		}
		return repositories.WriteResult{}, apperrors.NewInternalError("failed to write "+what, err)
	}
	return repositories.WriteResult{
		Success:      res.Success,
		ID:           res.LastInsertID,
		RowsAffected: res.RowsAffected,
	}, nil
}

func (s *Service) createdAt(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t.UTC()
}
