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

// VendorRequest is a provider profile as submitted by its owner
type VendorRequest struct {
	BusinessName string
	Description  string
	Address      string
}

// VendorService manages service provider profiles
type VendorService struct {
	providers repositories.ProviderRepository
	services  repositories.ServiceRepository
	bus       providers.EventBus
}

// NewVendorService creates a new vendor service. bus may be nil.
func NewVendorService(providerRepo repositories.ProviderRepository, services repositories.ServiceRepository, bus providers.EventBus) *VendorService {
	return &VendorService{providers: providerRepo, services: services, bus: bus}
}

// List returns providers in the given verification state
func (s *VendorService) List(ctx context.Context, verified bool) ([]*entities.ServiceProvider, error) {
	return s.providers.ListServiceProviders(ctx, verified)
}

// Register creates the caller's provider profile. Each user may own one.
func (s *VendorService) Register(ctx context.Context, userID int64, req VendorRequest) (int64, error) {
	existing, err := s.providers.GetServiceProviderByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, apperrors.NewConflictError("Vendor profile already exists")
	}

	res, err := s.providers.CreateServiceProvider(ctx, entities.CreateProviderInput{
		UserID:       userID,
		BusinessName: strings.TrimSpace(req.BusinessName),
		Description:  strings.TrimSpace(req.Description),
		Address:      strings.TrimSpace(req.Address),
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeConflict) {
			return 0, apperrors.NewConflictError("Vendor profile already exists")
		}
		return 0, err
	}
	if !res.Success {
		return 0, apperrors.NewInternalError("failed to create vendor profile", nil)
	}

	publishCatalogEvent(ctx, s.bus, entities.CatalogEventProviderCreated, res.ID)
	return res.ID, nil
}

// Dashboard returns the caller's provider profile with its services
func (s *VendorService) Dashboard(ctx context.Context, userID int64) (*entities.VendorDashboard, error) {
	provider, err := s.providers.GetServiceProviderByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperrors.NewNotFoundError("Vendor profile not found")
	}

	services, err := s.services.GetServicesByProvider(ctx, provider.ID)
	if err != nil {
		return nil, err
	}
	return &entities.VendorDashboard{Provider: provider, Services: services}, nil
}

// Verify marks a provider verified. Verifying twice is not an error.
func (s *VendorService) Verify(ctx context.Context, providerID int64) (*entities.ServiceProvider, error) {
	res, err := s.providers.VerifyServiceProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !res.Success || res.RowsAffected == 0 {
		return nil, apperrors.NewNotFoundError("Vendor not found")
	}

	publishCatalogEvent(ctx, s.bus, entities.CatalogEventProviderVerified, providerID)
	observability.LoggerFromContext(ctx).Info().Int64("provider_id", providerID).Msg("vendor verified")

	return s.providers.GetServiceProviderByID(ctx, providerID)
}
