package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
)

// CatalogService defines the read-only catalog operations.
type CatalogService interface {
	ListDestinations(ctx context.Context) ([]*entities.Island, error)
	SearchDestinations(ctx context.Context, query string) ([]*entities.Island, error)
	GetDestination(ctx context.Context, id int64) (*entities.IslandDetail, error)
	ListPackages(ctx context.Context) ([]*entities.Package, error)
	GetPackage(ctx context.Context, id int64) (*entities.Package, error)
	Activities(ctx context.Context) (*entities.Activities, error)
}

// CatalogHandler handles destinations, packages and activities
type CatalogHandler struct {
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListDestinations handles GET /api/destinations, searching when q is set
func (h *CatalogHandler) ListDestinations(w http.ResponseWriter, r *http.Request) {
	var (
		islands []*entities.Island
		err     error
	)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		islands, err = h.service.SearchDestinations(r.Context(), q)
	} else {
		islands, err = h.service.ListDestinations(r.Context())
	}
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithData(w, http.StatusOK, nonNil(islands))
}

// GetDestination handles GET /api/destinations/{id}
func (h *CatalogHandler) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	detail, err := h.service.GetDestination(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	detail.Services = nonNil(detail.Services)
	respondWithData(w, http.StatusOK, detail)
}

// ListPackages handles GET /api/packages
func (h *CatalogHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.ListPackages(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithData(w, http.StatusOK, nonNil(packages))
}

// GetPackage handles GET /api/packages/{id}
func (h *CatalogHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	pkg, err := h.service.GetPackage(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithData(w, http.StatusOK, pkg)
}

// Activities handles GET /api/activities
func (h *CatalogHandler) Activities(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.Activities(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	all.Destinations = nonNil(all.Destinations)
	all.Packages = nonNil(all.Packages)
	all.Activities = nonNil(all.Activities)
	respondWithData(w, http.StatusOK, all)
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
