package services

import (
	"context"
	"time"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/repositories"
	apperrors "github.com/chandrabs25/Andaman-travel-website/pkg/errors"
)

// FerryService answers schedule lookups
type FerryService struct {
	ferries repositories.FerryRepository
}

// NewFerryService creates a new ferry service
func NewFerryService(ferries repositories.FerryRepository) *FerryService {
	return &FerryService{ferries: ferries}
}

// Schedules returns sailings from origin to destination on date (YYYY-MM-DD)
func (s *FerryService) Schedules(ctx context.Context, originID, destinationID int64, date string) ([]*entities.FerrySchedule, error) {
	if originID <= 0 || destinationID <= 0 {
		return nil, apperrors.NewValidationError("origin and destination are required")
	}
	if originID == destinationID {
		return nil, apperrors.NewValidationError("origin and destination must differ")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, apperrors.NewValidationError("date must be YYYY-MM-DD")
	}
	return s.ferries.GetFerrySchedules(ctx, originID, destinationID, date)
}
