package database_test

import (
	"context"
	"path"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chandrabs25/Andaman-travel-website/internal/adapters/database"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/providers"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	return err == nil, nil
}

func (m *memoryCache) Incr(_ context.Context, key string, _ int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ := strconv.ParseInt(string(m.data[key]), 10, 64)
	n++
	m.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (m *memoryCache) has(key string) bool {
	ok, _ := m.Exists(context.Background(), key)
	return ok
}

func TestCachedService_ServesListsFromCache(t *testing.T) {
	svc := setupService(t)
	cache := newMemoryCache()
	cached := database.NewCachedService(svc, cache, nil)
	ctx := context.Background()

	islands, err := cached.ListIslands(ctx)
	require.NoError(t, err)
	require.Len(t, islands, 4)
	require.Eventually(t, func() bool { return cache.has(providers.CacheKeyIslands) }, time.Second, 10*time.Millisecond)

	_, err = svc.Store().Prepare("INSERT INTO islands (name) VALUES (?)").Bind("Ross Island").Run(ctx)
	require.NoError(t, err)

	islands, err = cached.ListIslands(ctx)
	require.NoError(t, err)
	assert.Len(t, islands, 4)

	fresh, err := svc.ListIslands(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 5)
}

func TestCachedService_DoesNotCacheAbsentRows(t *testing.T) {
	svc := setupService(t)
	cache := newMemoryCache()
	cached := database.NewCachedService(svc, cache, nil)

	pkg, err := cached.GetPackageByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, pkg)

	time.Sleep(50 * time.Millisecond)
	assert.False(t, cache.has(providers.CacheKeyPackage(99)))
}

func TestCachedService_WritesInvalidateDependentKeys(t *testing.T) {
	svc := setupService(t)
	cache := newMemoryCache()
	cached := database.NewCachedService(svc, cache, nil)
	ctx := context.Background()

	reviews, err := cached.GetReviewsByService(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.Eventually(t, func() bool { return cache.has(providers.CacheKeyReviews(1)) }, time.Second, 10*time.Millisecond)

	_, err = cached.CreateReview(ctx, entities.CreateReviewInput{UserID: 2, ServiceID: 1, Rating: 5, Comment: "Superb"})
	require.NoError(t, err)
	assert.False(t, cache.has(providers.CacheKeyReviews(1)))

	reviews, err = cached.GetReviewsByService(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	_, err = cached.ListServiceProviders(ctx, true)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return cache.has(providers.CacheKeyProviders(true)) }, time.Second, 10*time.Millisecond)

	_, err = cached.VerifyServiceProvider(ctx, 1)
	require.NoError(t, err)
	assert.False(t, cache.has(providers.CacheKeyProviders(true)))
}

// slowSetCache delays every Set so a background fill lands after a
// concurrent write.
type slowSetCache struct {
	*memoryCache
	delay time.Duration
}

func (s *slowSetCache) Set(ctx context.Context, key string, value []byte, ttl int) error {
	time.Sleep(s.delay)
	return s.memoryCache.Set(ctx, key, value, ttl)
}

func TestCachedService_LateFillDoesNotOutliveWrite(t *testing.T) {
	svc := setupService(t)
	cache := &slowSetCache{memoryCache: newMemoryCache(), delay: 30 * time.Millisecond}
	cached := database.NewCachedService(svc, cache, nil)
	ctx := context.Background()

	res, err := cached.CreateServiceProvider(ctx, entities.CreateProviderInput{UserID: 1, BusinessName: "Coral Kayaks"})
	require.NoError(t, err)
	require.True(t, res.Success)

	verified, err := cached.ListServiceProviders(ctx, true)
	require.NoError(t, err)
	require.Len(t, verified, 1)

	_, err = cached.VerifyServiceProvider(ctx, res.ID)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	verified, err = cached.ListServiceProviders(ctx, true)
	require.NoError(t, err)
	assert.Len(t, verified, 2)

	reviews, err := cached.GetReviewsByService(ctx, 1)
	require.NoError(t, err)
	_, err = cached.CreateReview(ctx, entities.CreateReviewInput{UserID: 2, ServiceID: 1, Rating: 4, Comment: "Calm water"})
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	fresh, err := cached.GetReviewsByService(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, fresh, len(reviews)+1)
}
