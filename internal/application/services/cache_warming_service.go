package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/repositories"
)

// CacheWarmingService preloads the reference catalog through the cached
// repositories so the first visitors do not pay for cold reads
type CacheWarmingService struct {
	islands  repositories.IslandRepository
	services repositories.ServiceRepository
	packages repositories.PackageRepository
}

// NewCacheWarmingService creates a new cache warming service
func NewCacheWarmingService(
	islands repositories.IslandRepository,
	services repositories.ServiceRepository,
	packages repositories.PackageRepository,
) *CacheWarmingService {
	return &CacheWarmingService{
		islands:  islands,
		services: services,
		packages: packages,
	}
}

// WarmCache reads the catalog lists and every island with its services.
// Failures are logged; warming is best effort.
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	log.Info().Msg("starting cache warming")

	if err := s.warmIslands(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to warm islands")
	}
	if _, err := s.packages.ListActivePackages(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to warm packages")
	}
	if _, err := s.services.ListServices(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to warm services")
	}

	log.Info().Msg("cache warming completed")
	return nil
}

func (s *CacheWarmingService) warmIslands(ctx context.Context) error {
	islands, err := s.islands.ListIslands(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch islands: %w", err)
	}

	for _, island := range islands {
		if _, err := s.islands.GetIslandByID(ctx, island.ID); err != nil {
			return fmt.Errorf("failed to warm island %d: %w", island.ID, err)
		}
		if _, err := s.services.GetServicesByIsland(ctx, island.ID); err != nil {
			return fmt.Errorf("failed to warm services for island %d: %w", island.ID, err)
		}
	}
	log.Info().Int("islands", len(islands)).Msg("warmed island cache")
	return nil
}
