package database

import (
	"context"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
)

// destinationSearchLimit caps SearchDestinations results.
const destinationSearchLimit = 10

var (
	islandColumns  = []interface{}{"id", "name", "description", "image_url", "location"}
	serviceColumns = []interface{}{"id", "name", "description", "image_url", "price", "duration", "island_id", "provider_id"}
	packageColumns = []interface{}{"id", "name", "description", "image_url", "price", "duration", "is_active"}
)

// ListIslands returns every island by id.
func (s *Service) ListIslands(ctx context.Context) ([]*entities.Island, error) {
	query := s.dialect.From("islands").Prepared(true).
		Select(islandColumns...).
		Order(goqu.C("id").Asc())

	var islands []*entities.Island
	if err := s.list(ctx, query, &islands, "islands"); err != nil {
		return nil, err
	}
	return islands, nil
}

// GetIslandByID returns one island or nil.
func (s *Service) GetIslandByID(ctx context.Context, id int64) (*entities.Island, error) {
	query := s.dialect.From("islands").Prepared(true).
		Select(islandColumns...).
		Where(goqu.C("id").Eq(id))

	var island entities.Island
	found, err := s.get(ctx, query, &island, "island")
	if err != nil || !found {
		return nil, err
	}
	return &island, nil
}

// SearchDestinations matches q case-insensitively against name, description
// and location. An empty query lists the first islands.
func (s *Service) SearchDestinations(ctx context.Context, q string) ([]*entities.Island, error) {
	query := s.dialect.From("islands").Prepared(true).
		Select(islandColumns...).
		Order(goqu.C("id").Asc()).
		Limit(destinationSearchLimit)

	if q = strings.TrimSpace(q); q != "" {
		term := "%" + strings.ToLower(q) + "%"
		query = query.Where(goqu.Or(
			goqu.Func("LOWER", goqu.C("name")).Like(term),
			goqu.Func("LOWER", goqu.C("description")).Like(term),
			goqu.Func("LOWER", goqu.C("location")).Like(term),
		))
	}

	var islands []*entities.Island
	if err := s.list(ctx, query, &islands, "destinations"); err != nil {
		return nil, err
	}
	return islands, nil
}

// ListServices returns every service by id.
func (s *Service) ListServices(ctx context.Context) ([]*entities.Service, error) {
	query := s.dialect.From("services").Prepared(true).
		Select(serviceColumns...).
		Order(goqu.C("id").Asc())

	var services []*entities.Service
	if err := s.list(ctx, query, &services, "services"); err != nil {
		return nil, err
	}
	return services, nil
}

// GetServiceByID returns one service or nil.
func (s *Service) GetServiceByID(ctx context.Context, id int64) (*entities.Service, error) {
	query := s.dialect.From("services").Prepared(true).
		Select(serviceColumns...).
		Where(goqu.C("id").Eq(id))

	var service entities.Service
	found, err := s.get(ctx, query, &service, "service")
	if err != nil || !found {
		return nil, err
	}
	return &service, nil
}

// GetServicesByIsland returns the services offered on an island.
func (s *Service) GetServicesByIsland(ctx context.Context, islandID int64) ([]*entities.Service, error) {
	query := s.dialect.From("services").Prepared(true).
		Select(serviceColumns...).
		Where(goqu.C("island_id").Eq(islandID)).
		Order(goqu.C("id").Asc())

	var services []*entities.Service
	if err := s.list(ctx, query, &services, "services"); err != nil {
		return nil, err
	}
	return services, nil
}

// GetServicesByProvider returns the services a vendor offers.
func (s *Service) GetServicesByProvider(ctx context.Context, providerID int64) ([]*entities.Service, error) {
	query := s.dialect.From("services").Prepared(true).
		Select(serviceColumns...).
		Where(goqu.C("provider_id").Eq(providerID)).
		Order(goqu.C("id").Asc())

	var services []*entities.Service
	if err := s.list(ctx, query, &services, "services"); err != nil {
		return nil, err
	}
	return services, nil
}

// ListActivePackages returns packages with is_active set.
func (s *Service) ListActivePackages(ctx context.Context) ([]*entities.Package, error) {
	query := s.dialect.From("packages").Prepared(true).
		Select(packageColumns...).
		Where(goqu.C("is_active").Eq(true)).
		Order(goqu.C("id").Asc())

	var packages []*entities.Package
	if err := s.list(ctx, query, &packages, "packages"); err != nil {
		return nil, err
	}
	return packages, nil
}

// GetPackageByID returns a package whether or not it is active.
func (s *Service) GetPackageByID(ctx context.Context, id int64) (*entities.Package, error) {
	query := s.dialect.From("packages").Prepared(true).
		Select(packageColumns...).
		Where(goqu.C("id").Eq(id))

	var pkg entities.Package
	found, err := s.get(ctx, query, &pkg, "package")
	if err != nil || !found {
		return nil, err
	}
	return &pkg, nil
}
