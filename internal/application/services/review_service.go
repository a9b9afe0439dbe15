package services

import (
	"context"
	"strings"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/providers"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/repositories"
	apperrors "github.com/chandrabs25/Andaman-travel-website/pkg/errors"
)

// ReviewService handles service reviews
type ReviewService struct {
	reviews  repositories.ReviewRepository
	services repositories.ServiceRepository
	bus      providers.EventBus
}

// NewReviewService creates a new review service. bus may be nil.
func NewReviewService(reviews repositories.ReviewRepository, services repositories.ServiceRepository, bus providers.EventBus) *ReviewService {
	return &ReviewService{reviews: reviews, services: services, bus: bus}
}

// ListForService returns a service's reviews, newest first
func (s *ReviewService) ListForService(ctx context.Context, serviceID int64) ([]*entities.Review, error) {
	if err := s.requireService(ctx, serviceID); err != nil {
		return nil, err
	}
	return s.reviews.GetReviewsByService(ctx, serviceID)
}

// Create records a review by userID and returns its id
func (s *ReviewService) Create(ctx context.Context, userID, serviceID int64, rating int, comment string) (int64, error) {
	if rating < 1 || rating > 5 {
		return 0, apperrors.NewValidationError("Rating must be between 1 and 5")
	}
	if err := s.requireService(ctx, serviceID); err != nil {
		return 0, err
	}

	res, err := s.reviews.CreateReview(ctx, entities.CreateReviewInput{
		UserID:    userID,
		ServiceID: serviceID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	})
	if err != nil {
		return 0, err
	}
	if !res.Success {
		return 0, apperrors.NewInternalError("failed to create review", nil)
	}

	publishCatalogEvent(ctx, s.bus, entities.CatalogEventReviewCreated, serviceID)
	return res.ID, nil
}

func (s *ReviewService) requireService(ctx context.Context, serviceID int64) error {
	service, err := s.services.GetServiceByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if service == nil {
		return apperrors.NewNotFoundError("Service not found")
	}
	return nil
}
