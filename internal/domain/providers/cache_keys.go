package providers

import "fmt"

// Cache keys shared by the cached data access service and the invalidation
// listener.
const (
	CacheKeyIslands        = "catalog:islands"
	CacheKeyServices       = "catalog:services"
	CacheKeyActivePackages = "catalog:packages:active"

	CachePatternProviders = "catalog:providers:*"
)

func CacheKeyIsland(id int64) string { return fmt.Sprintf("catalog:island:%d", id) }

func CacheKeyService(id int64) string { return fmt.Sprintf("catalog:service:%d", id) }

func CacheKeyPackage(id int64) string { return fmt.Sprintf("catalog:package:%d", id) }

func CacheKeyIslandServices(islandID int64) string {
	return fmt.Sprintf("catalog:island:%d:services", islandID)
}

func CacheKeyProviders(verified bool) string {
	return fmt.Sprintf("catalog:providers:%t", verified)
}

func CacheKeyReviews(serviceID int64) string {
	return fmt.Sprintf("catalog:reviews:%d", serviceID)
}
