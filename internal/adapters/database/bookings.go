package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/repositories"
)

var bookingColumns = []interface{}{
	"id", "user_id", "package_id", "total_people", "start_date", "end_date", "total_amount", "created_at",
}

// CreateBooking inserts a booking.
func (s *Service) CreateBooking(ctx context.Context, input entities.CreateBookingInput) (repositories.WriteResult, error) {
	var packageID interface{}
	if input.PackageID != nil {
		packageID = *input.PackageID
	}

	query := s.dialect.Insert("bookings").Prepared(true).Rows(goqu.Record{
		"user_id":      input.UserID,
		"package_id":   packageID,
		"total_people": input.TotalPeople,
		"start_date":   input.StartDate,
		"end_date":     input.EndDate,
		"total_amount": input.TotalAmount,
		"created_at":   s.createdAt(input.CreatedAt),
	})
	return s.exec(ctx, query, "booking")
}

// GetBookingsByUser returns a user's bookings, newest first.
func (s *Service) GetBookingsByUser(ctx context.Context, userID int64) ([]*entities.Booking, error) {
	query := s.dialect.From("bookings").Prepared(true).
		Select(bookingColumns...).
		Where(goqu.C("user_id").Eq(userID)).
		Order(goqu.C("created_at").Desc(), goqu.C("id").Desc())

	var bookings []*entities.Booking
	if err := s.list(ctx, query, &bookings, "bookings"); err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBookingByID returns one booking or nil.
func (s *Service) GetBookingByID(ctx context.Context, id int64) (*entities.Booking, error) {
	query := s.dialect.From("bookings").Prepared(true).
		Select(bookingColumns...).
		Where(goqu.C("id").Eq(id))

	var booking entities.Booking
	found, err := s.get(ctx, query, &booking, "booking")
	if err != nil || !found {
		return nil, err
	}
	return &booking, nil
}
