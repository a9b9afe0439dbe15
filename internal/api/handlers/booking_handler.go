package handlers

import (
	"context"
	"net/http"

	"github.com/chandrabs25/Andaman-travel-website/internal/application/services"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
)

// BookingService defines the booking operations used by BookingHandler.
type BookingService interface {
	ListForUser(ctx context.Context, userID int64) ([]*entities.Booking, error)
	Get(ctx context.Context, userID, bookingID int64) (*entities.Booking, error)
	Create(ctx context.Context, userID int64, req services.BookingRequest) (int64, error)
}

// BookingHandler handles the caller's bookings. Every route requires an
// identity.
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	bookings, err := h.service.ListForUser(r.Context(), caller.ID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithData(w, http.StatusOK, nonNil(bookings))
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := decodeAndValidate(w, r, &req, ""); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	id, err := h.service.Create(r.Context(), caller.ID, services.BookingRequest{
		PackageID:   req.PackageID,
		TotalPeople: req.TotalPeople,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: "Booking created successfully",
		Data:    map[string]int64{"id": id},
	})
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	booking, err := h.service.Get(r.Context(), caller.ID, id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithData(w, http.StatusOK, booking)
}
