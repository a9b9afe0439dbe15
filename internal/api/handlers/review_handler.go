package handlers

import (
	"context"
	"net/http"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
)

// ReviewService defines the review operations used by ReviewHandler.
type ReviewService interface {
	ListForService(ctx context.Context, serviceID int64) ([]*entities.Review, error)
	Create(ctx context.Context, userID, serviceID int64, rating int, comment string) (int64, error)
}

// ReviewHandler handles service reviews
type ReviewHandler struct {
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// ListReviews handles GET /api/services/{id}/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	serviceID, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	reviews, err := h.service.ListForService(r.Context(), serviceID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithData(w, http.StatusOK, nonNil(reviews))
}

// CreateReview handles POST /api/services/{id}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	serviceID, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var req createReviewRequest
	if err := decodeAndValidate(w, r, &req, ""); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	id, err := h.service.Create(r.Context(), caller.ID, serviceID, req.Rating, req.Comment)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: "Review submitted",
		Data:    map[string]int64{"id": id},
	})
}
