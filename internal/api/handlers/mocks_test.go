package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chandrabs25/Andaman-travel-website/internal/api/handlers"
	"github.com/chandrabs25/Andaman-travel-website/internal/application/services"
	"github.com/chandrabs25/Andaman-travel-website/internal/auth"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, in services.RegisterInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*entities.User, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(0).(*entities.User)
	return u, args.Error(1)
}

type MockCatalogService struct{ mock.Mock }

func (m *MockCatalogService) ListDestinations(ctx context.Context) ([]*entities.Island, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]*entities.Island)
	return v, args.Error(1)
}

func (m *MockCatalogService) SearchDestinations(ctx context.Context, query string) ([]*entities.Island, error) {
	args := m.Called(ctx, query)
	v, _ := args.Get(0).([]*entities.Island)
	return v, args.Error(1)
}

func (m *MockCatalogService) GetDestination(ctx context.Context, id int64) (*entities.IslandDetail, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*entities.IslandDetail)
	return v, args.Error(1)
}

func (m *MockCatalogService) ListPackages(ctx context.Context) ([]*entities.Package, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]*entities.Package)
	return v, args.Error(1)
}

func (m *MockCatalogService) GetPackage(ctx context.Context, id int64) (*entities.Package, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*entities.Package)
	return v, args.Error(1)
}

func (m *MockCatalogService) Activities(ctx context.Context) (*entities.Activities, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).(*entities.Activities)
	return v, args.Error(1)
}

type MockBookingService struct{ mock.Mock }

func (m *MockBookingService) ListForUser(ctx context.Context, userID int64) ([]*entities.Booking, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).([]*entities.Booking)
	return v, args.Error(1)
}

func (m *MockBookingService) Get(ctx context.Context, userID, bookingID int64) (*entities.Booking, error) {
	args := m.Called(ctx, userID, bookingID)
	v, _ := args.Get(0).(*entities.Booking)
	return v, args.Error(1)
}

func (m *MockBookingService) Create(ctx context.Context, userID int64, req services.BookingRequest) (int64, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(int64), args.Error(1)
}

type MockReviewService struct{ mock.Mock }

func (m *MockReviewService) ListForService(ctx context.Context, serviceID int64) ([]*entities.Review, error) {
	args := m.Called(ctx, serviceID)
	v, _ := args.Get(0).([]*entities.Review)
	return v, args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, userID, serviceID int64, rating int, comment string) (int64, error) {
	args := m.Called(ctx, userID, serviceID, rating, comment)
	return args.Get(0).(int64), args.Error(1)
}

type MockFerryService struct{ mock.Mock }

func (m *MockFerryService) Schedules(ctx context.Context, originID, destinationID int64, date string) ([]*entities.FerrySchedule, error) {
	args := m.Called(ctx, originID, destinationID, date)
	v, _ := args.Get(0).([]*entities.FerrySchedule)
	return v, args.Error(1)
}

type MockVendorService struct{ mock.Mock }

func (m *MockVendorService) List(ctx context.Context, verified bool) ([]*entities.ServiceProvider, error) {
	args := m.Called(ctx, verified)
	v, _ := args.Get(0).([]*entities.ServiceProvider)
	return v, args.Error(1)
}

func (m *MockVendorService) Register(ctx context.Context, userID int64, req services.VendorRequest) (int64, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorService) Dashboard(ctx context.Context, userID int64) (*entities.VendorDashboard, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).(*entities.VendorDashboard)
	return v, args.Error(1)
}

func (m *MockVendorService) Verify(ctx context.Context, providerID int64) (*entities.ServiceProvider, error) {
	args := m.Called(ctx, providerID)
	v, _ := args.Get(0).(*entities.ServiceProvider)
	return v, args.Error(1)
}

var _ handlers.AuthService = (*MockAuthService)(nil)
var _ handlers.CatalogService = (*MockCatalogService)(nil)
var _ handlers.BookingService = (*MockBookingService)(nil)
var _ handlers.ReviewService = (*MockReviewService)(nil)
var _ handlers.FerryService = (*MockFerryService)(nil)
var _ handlers.VendorService = (*MockVendorService)(nil)

// envelope mirrors handlers.Envelope with the data left raw.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

func asUser(r *http.Request, id int64, role string) *http.Request {
	return r.WithContext(auth.WithIdentity(r.Context(), auth.Identity{ID: id, Role: role}))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
