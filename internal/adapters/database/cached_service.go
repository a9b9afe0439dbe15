package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/providers"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/repositories"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/observability"
)

// Cache TTLs (in seconds)
const (
	catalogItemTTL  = 600 // reference data changes only through migrations
	catalogListTTL  = 300
	providerListTTL = 120
	reviewListTTL   = 60
)

// CachedService wraps Service with a read-through cache for catalog reads.
// Methods not overridden here go straight to the store.
type CachedService struct {
	*Service
	cache   providers.CacheProvider
	metrics *observability.Metrics

	// generations counts invalidations per key. A fill that started under
	// an older generation must not land.
	mu          sync.Mutex
	generations map[string]uint64
}

// NewCachedService creates a cached data access service.
func NewCachedService(svc *Service, cache providers.CacheProvider, metrics *observability.Metrics) *CachedService {
	return &CachedService{
		Service:     svc,
		cache:       cache,
		metrics:     metrics,
		generations: make(map[string]uint64),
	}
}

func (c *CachedService) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

// readThrough serves key from cache or calls load and fills the cache in the
// background. Absent results are not cached.
func readThrough[T any](ctx context.Context, c *CachedService, key string, ttl int, load func(context.Context) (T, error)) (T, error) {
	cached, err := c.cache.Get(ctx, key)
	if err == nil {
		var v T
		if err := json.Unmarshal(cached, &v); err == nil {
			observability.RecordCacheHit(ctx, c.metrics, key)
			return v, nil
		}
		log.Warn().Str("key", key).Err(err).Msg("failed to unmarshal cached value")
	} else if !errors.Is(err, providers.ErrCacheMiss) {
		log.Warn().Str("key", key).Err(err).Msg("cache read failed")
	}
	observability.RecordCacheMiss(ctx, c.metrics, key)

	gen := c.generation(key)
	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	data, err := json.Marshal(v)
	if err != nil || bytes.Equal(data, []byte("null")) {
		return v, nil
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if c.generation(key) != gen {
			return
		}
		if err := c.cache.Set(bgCtx, key, data, ttl); err != nil {
			log.Warn().Str("key", key).Err(err).Msg("failed to cache value")
			return
		}
		// a write raced the Set; drop what may be a stale value
		if c.generation(key) != gen {
			if err := c.cache.Delete(bgCtx, key); err != nil {
				log.Warn().Str("key", key).Err(err).Msg("failed to drop stale cache value")
			}
		}
	}()
	return v, nil
}

func (c *CachedService) invalidate(ctx context.Context, keys ...string) {
	c.mu.Lock()
	for _, key := range keys {
		c.generations[key]++
	}
	c.mu.Unlock()

	for _, key := range keys {
		if err := c.cache.Delete(ctx, key); err != nil {
			log.Warn().Str("key", key).Err(err).Msg("failed to invalidate cache key")
		}
	}
}

// ListIslands returns every island with caching
func (c *CachedService) ListIslands(ctx context.Context) ([]*entities.Island, error) {
	return readThrough(ctx, c, providers.CacheKeyIslands, catalogListTTL, c.Service.ListIslands)
}

// GetIslandByID returns one island with caching
func (c *CachedService) GetIslandByID(ctx context.Context, id int64) (*entities.Island, error) {
	return readThrough(ctx, c, providers.CacheKeyIsland(id), catalogItemTTL, func(ctx context.Context) (*entities.Island, error) {
		return c.Service.GetIslandByID(ctx, id)
	})
}

// ListServices returns every service with caching
func (c *CachedService) ListServices(ctx context.Context) ([]*entities.Service, error) {
	return readThrough(ctx, c, providers.CacheKeyServices, catalogListTTL, c.Service.ListServices)
}

// GetServiceByID returns one service with caching
func (c *CachedService) GetServiceByID(ctx context.Context, id int64) (*entities.Service, error) {
	return readThrough(ctx, c, providers.CacheKeyService(id), catalogItemTTL, func(ctx context.Context) (*entities.Service, error) {
		return c.Service.GetServiceByID(ctx, id)
	})
}

// GetServicesByIsland returns an island's services with caching
func (c *CachedService) GetServicesByIsland(ctx context.Context, islandID int64) ([]*entities.Service, error) {
	return readThrough(ctx, c, providers.CacheKeyIslandServices(islandID), catalogListTTL, func(ctx context.Context) ([]*entities.Service, error) {
		return c.Service.GetServicesByIsland(ctx, islandID)
	})
}

// ListActivePackages returns active packages with caching
func (c *CachedService) ListActivePackages(ctx context.Context) ([]*entities.Package, error) {
	return readThrough(ctx, c, providers.CacheKeyActivePackages, catalogListTTL, c.Service.ListActivePackages)
}

// GetPackageByID returns one package with caching
func (c *CachedService) GetPackageByID(ctx context.Context, id int64) (*entities.Package, error) {
	return readThrough(ctx, c, providers.CacheKeyPackage(id), catalogItemTTL, func(ctx context.Context) (*entities.Package, error) {
		return c.Service.GetPackageByID(ctx, id)
	})
}

// ListServiceProviders returns providers by verification state with caching
func (c *CachedService) ListServiceProviders(ctx context.Context, verified bool) ([]*entities.ServiceProvider, error) {
	return readThrough(ctx, c, providers.CacheKeyProviders(verified), providerListTTL, func(ctx context.Context) ([]*entities.ServiceProvider, error) {
		return c.Service.ListServiceProviders(ctx, verified)
	})
}

// GetReviewsByService returns a service's reviews with caching
func (c *CachedService) GetReviewsByService(ctx context.Context, serviceID int64) ([]*entities.Review, error) {
	return readThrough(ctx, c, providers.CacheKeyReviews(serviceID), reviewListTTL, func(ctx context.Context) ([]*entities.Review, error) {
		return c.Service.GetReviewsByService(ctx, serviceID)
	})
}

// CreateServiceProvider inserts a provider and drops cached provider lists
func (c *CachedService) CreateServiceProvider(ctx context.Context, input entities.CreateProviderInput) (repositories.WriteResult, error) {
	res, err := c.Service.CreateServiceProvider(ctx, input)
	if err == nil && res.Success {
		c.invalidate(ctx, providers.CacheKeyProviders(false), providers.CacheKeyProviders(true))
	}
	return res, err
}

// VerifyServiceProvider verifies a provider and drops cached provider lists
func (c *CachedService) VerifyServiceProvider(ctx context.Context, id int64) (repositories.WriteResult, error) {
	res, err := c.Service.VerifyServiceProvider(ctx, id)
	if err == nil && res.Success {
		c.invalidate(ctx, providers.CacheKeyProviders(false), providers.CacheKeyProviders(true))
	}
	return res, err
}

// CreateReview inserts a review and drops the service's cached reviews
func (c *CachedService) CreateReview(ctx context.Context, input entities.CreateReviewInput) (repositories.WriteResult, error) {
	res, err := c.Service.CreateReview(ctx, input)
	if err == nil && res.Success {
		c.invalidate(ctx, providers.CacheKeyReviews(input.ServiceID))
	}
	return res, err
}
