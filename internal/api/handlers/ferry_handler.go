package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	apperrors "github.com/chandrabs25/Andaman-travel-website/pkg/errors"
)

// FerryService defines the schedule lookup used by FerryHandler.
type FerryService interface {
	Schedules(ctx context.Context, originID, destinationID int64, date string) ([]*entities.FerrySchedule, error)
}

// FerryHandler handles ferry schedule lookups
type FerryHandler struct {
	service FerryService
}

// NewFerryHandler creates a new ferry handler
func NewFerryHandler(service FerryService) *FerryHandler {
	return &FerryHandler{service: service}
}

// GetSchedules handles GET /api/ferries/schedules?origin=&destination=&date=
func (h *FerryHandler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	origin, err := strconv.ParseInt(q.Get("origin"), 10, 64)
	if err != nil {
		respondWithAppError(w, r, apperrors.NewValidationError("origin must be an island id"))
		return
	}
	destination, err := strconv.ParseInt(q.Get("destination"), 10, 64)
	if err != nil {
		respondWithAppError(w, r, apperrors.NewValidationError("destination must be an island id"))
		return
	}

	schedules, err := h.service.Schedules(r.Context(), origin, destination, q.Get("date"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithData(w, http.StatusOK, nonNil(schedules))
}
