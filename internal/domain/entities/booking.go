package entities

import "time"

// Booking is a user's reservation. Party size is stored as text and dates as
// ISO calendar strings; status and payment fields are not persisted.
type Booking struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	PackageID   *int64    `json:"package_id,omitempty" db:"package_id"`
	TotalPeople string    `json:"total_people" db:"total_people"`
	StartDate   string    `json:"start_date" db:"start_date"`
	EndDate     string    `json:"end_date" db:"end_date"`
	TotalAmount int64     `json:"total_amount" db:"total_amount"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreateBookingInput carries the fields required to insert a booking.
type CreateBookingInput struct {
	UserID      int64
	PackageID   *int64
	TotalPeople string
	StartDate   string
	EndDate     string
	TotalAmount int64
	CreatedAt   time.Time
}

// Review is a rating of a service, read back with the author's display name.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	ServiceID int64     `json:"service_id" db:"service_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UserName  string    `json:"user_name" db:"user_name"`
}

// CreateReviewInput carries the fields required to insert a review.
type CreateReviewInput struct {
	UserID    int64
	ServiceID int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}
