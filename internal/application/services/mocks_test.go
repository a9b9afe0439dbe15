package services_test

import (
	"context"
	"path"
	"strconv"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/providers"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/repositories"
)

// MockCacheProvider for testing
type MockCacheProvider struct {
	mu      sync.RWMutex
	data    map[string][]byte
	deleted []string
}

func NewMockCacheProvider() *MockCacheProvider {
	return &MockCacheProvider{data: make(map[string][]byte)}
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if val, ok := m.data[key]; ok {
		return val, nil
	}
	return nil, providers.ErrCacheMiss
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *MockCacheProvider) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.data, key)
			m.deleted = append(m.deleted, key)
		}
	}
	return nil
}

func (m *MockCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *MockCacheProvider) Incr(ctx context.Context, key string, expirationSeconds int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ := strconv.ParseInt(string(m.data[key]), 10, 64)
	n++
	m.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (m *MockCacheProvider) Deleted() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.deleted...)
}

// MockEventBus for testing
type MockEventBus struct {
	mu          sync.Mutex
	subscribers map[string][]chan *entities.CatalogEvent
	published   []*entities.CatalogEvent
}

func NewMockEventBus() *MockEventBus {
	return &MockEventBus{subscribers: make(map[string][]chan *entities.CatalogEvent)}
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.CatalogEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, event)
	for _, ch := range m.subscribers[channel] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.CatalogEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan *entities.CatalogEvent, 10)
	m.subscribers[channel] = append(m.subscribers[channel], ch)
	return ch, nil
}

func (m *MockEventBus) Unsubscribe(ctx context.Context, channel string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subscribers[channel] {
		close(ch)
	}
	delete(m.subscribers, channel)
	return nil
}

func (m *MockEventBus) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for channel, chans := range m.subscribers {
		for _, ch := range chans {
			close(ch)
		}
		delete(m.subscribers, channel)
	}
	return nil
}

func (m *MockEventBus) Published() []*entities.CatalogEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entities.CatalogEvent(nil), m.published...)
}

func (m *MockEventBus) SubscriberCount(channel string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscribers[channel])
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entities.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entities.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, input entities.CreateUserInput) (repositories.WriteResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(repositories.WriteResult), args.Error(1)
}

type MockIslandRepository struct{ mock.Mock }

func (m *MockIslandRepository) ListIslands(ctx context.Context) ([]*entities.Island, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]*entities.Island)
	return v, args.Error(1)
}

func (m *MockIslandRepository) GetIslandByID(ctx context.Context, id int64) (*entities.Island, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*entities.Island)
	return v, args.Error(1)
}

func (m *MockIslandRepository) SearchDestinations(ctx context.Context, query string) ([]*entities.Island, error) {
	args := m.Called(ctx, query)
	v, _ := args.Get(0).([]*entities.Island)
	return v, args.Error(1)
}

type MockServiceRepository struct{ mock.Mock }

func (m *MockServiceRepository) ListServices(ctx context.Context) ([]*entities.Service, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]*entities.Service)
	return v, args.Error(1)
}

func (m *MockServiceRepository) GetServiceByID(ctx context.Context, id int64) (*entities.Service, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*entities.Service)
	return v, args.Error(1)
}

func (m *MockServiceRepository) GetServicesByIsland(ctx context.Context, islandID int64) ([]*entities.Service, error) {
	args := m.Called(ctx, islandID)
	v, _ := args.Get(0).([]*entities.Service)
	return v, args.Error(1)
}

func (m *MockServiceRepository) GetServicesByProvider(ctx context.Context, providerID int64) ([]*entities.Service, error) {
	args := m.Called(ctx, providerID)
	v, _ := args.Get(0).([]*entities.Service)
	return v, args.Error(1)
}

type MockPackageRepository struct{ mock.Mock }

func (m *MockPackageRepository) ListActivePackages(ctx context.Context) ([]*entities.Package, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]*entities.Package)
	return v, args.Error(1)
}

func (m *MockPackageRepository) GetPackageByID(ctx context.Context, id int64) (*entities.Package, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*entities.Package)
	return v, args.Error(1)
}

type MockBookingRepository struct{ mock.Mock }

func (m *MockBookingRepository) CreateBooking(ctx context.Context, input entities.CreateBookingInput) (repositories.WriteResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(repositories.WriteResult), args.Error(1)
}

func (m *MockBookingRepository) GetBookingsByUser(ctx context.Context, userID int64) ([]*entities.Booking, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).([]*entities.Booking)
	return v, args.Error(1)
}

func (m *MockBookingRepository) GetBookingByID(ctx context.Context, id int64) (*entities.Booking, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*entities.Booking)
	return v, args.Error(1)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) CreateReview(ctx context.Context, input entities.CreateReviewInput) (repositories.WriteResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(repositories.WriteResult), args.Error(1)
}

func (m *MockReviewRepository) GetReviewsByService(ctx context.Context, serviceID int64) ([]*entities.Review, error) {
	args := m.Called(ctx, serviceID)
	v, _ := args.Get(0).([]*entities.Review)
	return v, args.Error(1)
}

type MockFerryRepository struct{ mock.Mock }

func (m *MockFerryRepository) GetFerrySchedules(ctx context.Context, originID, destinationID int64, date string) ([]*entities.FerrySchedule, error) {
	args := m.Called(ctx, originID, destinationID, date)
	v, _ := args.Get(0).([]*entities.FerrySchedule)
	return v, args.Error(1)
}

type MockProviderRepository struct{ mock.Mock }

func (m *MockProviderRepository) GetServiceProviderByUserID(ctx context.Context, userID int64) (*entities.ServiceProvider, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).(*entities.ServiceProvider)
	return v, args.Error(1)
}

func (m *MockProviderRepository) GetServiceProviderByID(ctx context.Context, id int64) (*entities.ServiceProvider, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*entities.ServiceProvider)
	return v, args.Error(1)
}

func (m *MockProviderRepository) CreateServiceProvider(ctx context.Context, input entities.CreateProviderInput) (repositories.WriteResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(repositories.WriteResult), args.Error(1)
}

func (m *MockProviderRepository) ListServiceProviders(ctx context.Context, verified bool) ([]*entities.ServiceProvider, error) {
	args := m.Called(ctx, verified)
	v, _ := args.Get(0).([]*entities.ServiceProvider)
	return v, args.Error(1)
}

func (m *MockProviderRepository) VerifyServiceProvider(ctx context.Context, id int64) (repositories.WriteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repositories.WriteResult), args.Error(1)
}

type MockSearchProvider struct{ mock.Mock }

func (m *MockSearchProvider) Index(ctx context.Context, island *entities.Island) error {
	return m.Called(ctx, island).Error(0)
}

func (m *MockSearchProvider) Search(ctx context.Context, query string, limit int) ([]*entities.Island, error) {
	args := m.Called(ctx, query, limit)
	v, _ := args.Get(0).([]*entities.Island)
	return v, args.Error(1)
}
