package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/chandrabs25/Andaman-travel-website/internal/application/services"
	"github.com/chandrabs25/Andaman-travel-website/internal/auth"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	apperrors "github.com/chandrabs25/Andaman-travel-website/pkg/errors"
)

// VendorService defines the provider operations used by VendorHandler.
type VendorService interface {
	List(ctx context.Context, verified bool) ([]*entities.ServiceProvider, error)
	Register(ctx context.Context, userID int64, req services.VendorRequest) (int64, error)
	Dashboard(ctx context.Context, userID int64) (*entities.VendorDashboard, error)
	Verify(ctx context.Context, providerID int64) (*entities.ServiceProvider, error)
}

// VendorHandler handles service provider profiles
type VendorHandler struct {
	service VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(service VendorService) *VendorHandler {
	return &VendorHandler{service: service}
}

// ListVendors handles GET /api/vendors. Unverified vendors are visible to
// admins only.
func (h *VendorHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	verified := true
	if raw := r.URL.Query().Get("verified"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithAppError(w, r, apperrors.NewValidationError("verified must be true or false"))
			return
		}
		verified = v
	}

	if !verified {
		caller, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			respondWithAppError(w, r, apperrors.NewUnauthorizedError("Authentication required"))
			return
		}
		if !caller.IsAdmin() {
			respondWithAppError(w, r, apperrors.NewForbiddenError("Admin access required"))
			return
		}
	}

	vendors, err := h.service.List(r.Context(), verified)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithData(w, http.StatusOK, nonNil(vendors))
}

// RegisterVendor handles POST /api/vendors
func (h *VendorHandler) RegisterVendor(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req createVendorRequest
	if err := decodeAndValidate(w, r, &req, ""); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	id, err := h.service.Register(r.Context(), caller.ID, services.VendorRequest{
		BusinessName: req.BusinessName,
		Description:  req.Description,
		Address:      req.Address,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: "Vendor profile created",
		Data:    map[string]int64{"id": id},
	})
}

// Dashboard handles GET /api/vendors/me
func (h *VendorHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	dash, err := h.service.Dashboard(r.Context(), caller.ID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	dash.Services = nonNil(dash.Services)
	respondWithData(w, http.StatusOK, dash)
}

// VerifyVendor handles POST /api/vendors/{id}/verify. The router only lets
// admins through.
func (h *VendorHandler) VerifyVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	vendor, err := h.service.Verify(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, Envelope{Success: true, Message: "Vendor verified", Data: vendor})
}

// requireIdentity returns the caller or answers 401.
func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	caller, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondWithAppError(w, r, apperrors.NewUnauthorizedError("Authentication required"))
		return auth.Identity{}, false
	}
	return caller, true
}
