package services

import (
	"context"
	"strings"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/providers"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/repositories"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/observability"
	apperrors "github.com/chandrabs25/Andaman-travel-website/pkg/errors"
)

// destinationSearchLimit matches the SQL search cap
const destinationSearchLimit = 10

// CatalogService serves the read-only travel catalog
type CatalogService struct {
	islands  repositories.IslandRepository
	services repositories.ServiceRepository
	packages repositories.PackageRepository
	search   providers.DestinationSearchProvider
}

// NewCatalogService creates a new catalog service. search may be nil, in
// which case destination search runs in SQL.
func NewCatalogService(
	islands repositories.IslandRepository,
	services repositories.ServiceRepository,
	packages repositories.PackageRepository,
	search providers.DestinationSearchProvider,
) *CatalogService {
	return &CatalogService{
		islands:  islands,
		services: services,
		packages: packages,
		search:   search,
	}
}

// ListDestinations returns every island
func (s *CatalogService) ListDestinations(ctx context.Context) ([]*entities.Island, error) {
	return s.islands.ListIslands(ctx)
}

// SearchDestinations searches the index when configured, falling back to the
// database if the index is unavailable.
func (s *CatalogService) SearchDestinations(ctx context.Context, query string) ([]*entities.Island, error) {
	query = strings.TrimSpace(query)
	if s.search != nil {
		islands, err := s.search.Search(ctx, query, destinationSearchLimit)
		if err == nil {
			return islands, nil
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("destination index unavailable, searching database")
	}
	return s.islands.SearchDestinations(ctx, query)
}

// GetDestination returns an island with the services offered on it
func (s *CatalogService) GetDestination(ctx context.Context, id int64) (*entities.IslandDetail, error) {
	island, err := s.islands.GetIslandByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if island == nil {
		return nil, apperrors.NewNotFoundError("Destination not found")
	}

	services, err := s.services.GetServicesByIsland(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entities.IslandDetail{Island: *island, Services: services}, nil
}

// ListPackages returns active packages
func (s *CatalogService) ListPackages(ctx context.Context) ([]*entities.Package, error) {
	return s.packages.ListActivePackages(ctx)
}

// GetPackage returns an active package. Inactive packages are reported as
// absent.
func (s *CatalogService) GetPackage(ctx context.Context, id int64) (*entities.Package, error) {
	pkg, err := s.packages.GetPackageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil || !pkg.IsActive {
		return nil, apperrors.NewNotFoundError("Package not found")
	}
	return pkg, nil
}

// Activities returns destinations, active packages and services together
func (s *CatalogService) Activities(ctx context.Context) (*entities.Activities, error) {
	islands, err := s.islands.ListIslands(ctx)
	if err != nil {
		return nil, err
	}
	packages, err := s.packages.ListActivePackages(ctx)
	if err != nil {
		return nil, err
	}
	services, err := s.services.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	return &entities.Activities{Destinations: islands, Packages: packages, Activities: services}, nil
}

// IndexDestinations pushes every island into the search index and returns
// how many were indexed
func (s *CatalogService) IndexDestinations(ctx context.Context) (int, error) {
	if s.search == nil {
		return 0, nil
	}

	islands, err := s.islands.ListIslands(ctx)
	if err != nil {
		return 0, err
	}

	indexed := 0
	for _, island := range islands {
		if err := s.search.Index(ctx, island); err != nil {
			// Log error but keep indexing the rest
			observability.LoggerFromContext(ctx).Warn().Err(err).Int64("island_id", island.ID).Msg("failed to index island")
			continue
		}
		indexed++
	}
	return indexed, nil
}
