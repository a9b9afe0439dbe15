package repositories

import (
	"context"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
)

// WriteResult reports the outcome of an insert or update.
// ID is the generated identifier for inserts.
type WriteResult struct {
	Success      bool
	ID           int64
	RowsAffected int64
}

// Lookups return (nil, nil) when nothing matches; an error always means the
// store itself failed.

// UserRepository defines user persistence
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	GetUserByID(ctx context.Context, id int64) (*entities.User, error)
	CreateUser(ctx context.Context, input entities.CreateUserInput) (WriteResult, error)
}

// IslandRepository defines destination reads
type IslandRepository interface {
	ListIslands(ctx context.Context) ([]*entities.Island, error)
	GetIslandByID(ctx context.Context, id int64) (*entities.Island, error)
	SearchDestinations(ctx context.Context, query string) ([]*entities.Island, error)
}

// ServiceRepository defines activity reads
type ServiceRepository interface {
	ListServices(ctx context.Context) ([]*entities.Service, error)
	GetServiceByID(ctx context.Context, id int64) (*entities.Service, error)
	GetServicesByIsland(ctx context.Context, islandID int64) ([]*entities.Service, error)
	GetServicesByProvider(ctx context.Context, providerID int64) ([]*entities.Service, error)
}

// PackageRepository defines package reads
type PackageRepository interface {
	ListActivePackages(ctx context.Context) ([]*entities.Package, error)
	GetPackageByID(ctx context.Context, id int64) (*entities.Package, error)
}

// BookingRepository defines booking persistence
type BookingRepository interface {
	CreateBooking(ctx context.Context, input entities.CreateBookingInput) (WriteResult, error)
	GetBookingsByUser(ctx context.Context, userID int64) ([]*entities.Booking, error)
	GetBookingByID(ctx context.Context, id int64) (*entities.Booking, error)
}

// ReviewRepository defines review persistence
type ReviewRepository interface {
	CreateReview(ctx context.Context, input entities.CreateReviewInput) (WriteResult, error)
	GetReviewsByService(ctx context.Context, serviceID int64) ([]*entities.Review, error)
}

// FerryRepository defines ferry schedule reads
type FerryRepository interface {
	// GetFerrySchedules returns sailings departing on date (YYYY-MM-DD),
	// earliest departure first.
	GetFerrySchedules(ctx context.Context, originID, destinationID int64, date string) ([]*entities.FerrySchedule, error)
}

// ProviderRepository defines vendor persistence
type ProviderRepository interface {
	GetServiceProviderByUserID(ctx context.Context, userID int64) (*entities.ServiceProvider, error)
	GetServiceProviderByID(ctx context.Context, id int64) (*entities.ServiceProvider, error)
	CreateServiceProvider(ctx context.Context, input entities.CreateProviderInput) (WriteResult, error)
	ListServiceProviders(ctx context.Context, verified bool) ([]*entities.ServiceProvider, error)
	// VerifyServiceProvider is idempotent.
	VerifyServiceProvider(ctx context.Context, id int64) (WriteResult, error)
}
