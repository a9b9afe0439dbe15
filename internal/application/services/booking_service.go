package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/repositories"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/observability"
	apperrors "github.com/chandrabs25/Andaman-travel-website/pkg/errors"
)

const dateLayout = "2006-01-02"

// maxPartySize bounds total_people on a single booking
const maxPartySize = 50

// BookingRequest is a booking as submitted by a user.
// TotalAmount is only used when no package is given.
type BookingRequest struct {
	PackageID   *int64
	TotalPeople string
	StartDate   string
	EndDate     string
	TotalAmount int64
}

// BookingService handles user bookings
type BookingService struct {
	bookings repositories.BookingRepository
	packages repositories.PackageRepository
}

// NewBookingService creates a new booking service
func NewBookingService(bookings repositories.BookingRepository, packages repositories.PackageRepository) *BookingService {
	return &BookingService{bookings: bookings, packages: packages}
}

// ListForUser returns the user's bookings
func (s *BookingService) ListForUser(ctx context.Context, userID int64) ([]*entities.Booking, error) {
	return s.bookings.GetBookingsByUser(ctx, userID)
}

// Get returns one of the user's bookings. Bookings owned by someone else are
// reported as absent.
func (s *BookingService) Get(ctx context.Context, userID, bookingID int64) (*entities.Booking, error) {
	booking, err := s.bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.UserID != userID {
		return nil, apperrors.NewNotFoundError("Booking not found")
	}
	return booking, nil
}

// Create validates and stores a booking for userID. With a package, the
// amount is the package price per person.
func (s *BookingService) Create(ctx context.Context, userID int64, req BookingRequest) (int64, error) {
	people, err := strconv.Atoi(strings.TrimSpace(req.TotalPeople))
	if err != nil || people < 1 || people > maxPartySize {
		return 0, apperrors.NewValidationError("total_people must be a whole number between 1 and 50")
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return 0, apperrors.NewValidationError("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return 0, apperrors.NewValidationError("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return 0, apperrors.NewValidationError("end_date must not be before start_date")
	}

	amount := req.TotalAmount
	if req.PackageID != nil {
		pkg, err := s.packages.GetPackageByID(ctx, *req.PackageID)
		if err != nil {
			return 0, err
		}
		if pkg == nil || !pkg.IsActive {
			return 0, apperrors.NewNotFoundError("Package not found")
		}
		amount = pkg.Price * int64(people)
	}
	if amount < 0 {
		return 0, apperrors.NewValidationError("total_amount must not be negative")
	}

	res, err := s.bookings.CreateBooking(ctx, entities.CreateBookingInput{
		UserID:      userID,
		PackageID:   req.PackageID,
		TotalPeople: strconv.Itoa(people),
		StartDate:   start.Format(dateLayout),
		EndDate:     end.Format(dateLayout),
		TotalAmount: amount,
	})
	if err != nil {
		return 0, err
	}
	if !res.Success {
		return 0, apperrors.NewInternalError("failed to create booking", nil)
	}

	observability.LoggerFromContext(ctx).Info().Int64("booking_id", res.ID).Int64("user_id", userID).Msg("booking created")
	return res.ID, nil
}
