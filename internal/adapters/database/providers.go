package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/repositories"
)

var providerColumns = []interface{}{
	"id", "user_id", "business_name", "description", "address", "verified", "created_at",
}

// GetServiceProviderByUserID returns the vendor profile owned by a user.
func (s *Service) GetServiceProviderByUserID(ctx context.Context, userID int64) (*entities.ServiceProvider, error) {
	query := s.dialect.From("service_providers").Prepared(true).
		Select(providerColumns...).
		Where(goqu.C("user_id").Eq(userID))

	var provider entities.ServiceProvider
	found, err := s.get(ctx, query, &provider, "service provider")
	if err != nil || !found {
		return nil, err
	}
	return &provider, nil
}

// GetServiceProviderByID returns one vendor profile or nil.
func (s *Service) GetServiceProviderByID(ctx context.Context, id int64) (*entities.ServiceProvider, error) {
	query := s.dialect.From("service_providers").Prepared(true).
		Select(providerColumns...).
		Where(goqu.C("id").Eq(id))

	var provider entities.ServiceProvider
	found, err := s.get(ctx, query, &provider, "service provider")
	if err != nil || !found {
		return nil, err
	}
	return &provider, nil
}

// CreateServiceProvider inserts an unverified vendor profile.
func (s *Service) CreateServiceProvider(ctx context.Context, input entities.CreateProviderInput) (repositories.WriteResult, error) {
	query := s.dialect.Insert("service_providers").Prepared(true).Rows(goqu.Record{
		"user_id":       input.UserID,
		"business_name": input.BusinessName,
		"description":   input.Description,
		"address":       input.Address,
		"verified":      false,
		"created_at":    s.createdAt(input.CreatedAt),
	})
	return s.exec(ctx, query, "service provider")
}

// ListServiceProviders returns vendors filtered by verification state.
func (s *Service) ListServiceProviders(ctx context.Context, verified bool) ([]*entities.ServiceProvider, error) {
	query := s.dialect.From("service_providers").Prepared(true).
		Select(providerColumns...).
		Where(goqu.C("verified").Eq(verified)).
		Order(goqu.C("id").Asc())

	var providers []*entities.ServiceProvider
	if err := s.list(ctx, query, &providers, "service providers"); err != nil {
		return nil, err
	}
	return providers, nil
}

// VerifyServiceProvider marks a vendor verified. Running it twice leaves the
// row unchanged; RowsAffected is zero only when the id does not exist.
func (s *Service) VerifyServiceProvider(ctx context.Context, id int64) (repositories.WriteResult, error) {
	query := s.dialect.Update("service_providers").Prepared(true).
		Set(goqu.Record{"verified": true}).
		Where(goqu.C("id").Eq(id))
	return s.exec(ctx, query, "service provider")
}
