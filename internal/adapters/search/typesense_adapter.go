package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/providers"
	tsclient "github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/clients/typesense"
)

// DestinationsCollection is the Typesense collection holding islands
const DestinationsCollection = "destinations"

// TypesenseAdapter implements destination search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ providers.DestinationSearchProvider = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	if _, err := a.client.Client().Collection(DestinationsCollection).Retrieve(ctx); err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: DestinationsCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "island_id", Type: "int64"},
			{Name: "name", Type: "string"},
			{Name: "description", Type: "string"},
			{Name: "location", Type: "string", Facet: pointer.True()},
			{Name: "image_url", Type: "string", Index: pointer.False(), Optional: pointer.True()},
			{Name: "tags", Type: "string[]", Optional: pointer.True()},
		},
		DefaultSortingField: pointer.String("island_id"),
	}

	if _, err := a.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}
	return nil
}

// Index upserts an island
func (a *TypesenseAdapter) Index(ctx context.Context, island *entities.Island) error {
	_, err := a.client.Client().Collection(DestinationsCollection).Documents().Upsert(ctx, islandDocument(island))
	if err != nil {
		return fmt.Errorf("failed to index island %d: %w", island.ID, err)
	}
	return nil
}

// Search runs a full-text query over name, description, location and tags
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.Island, error) {
	if query == "" {
		query = "*"
	}
	params := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,description,location,tags"),
		Page:    pointer.Int(1),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(DestinationsCollection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search destinations: %w", err)
	}

	islands := []*entities.Island{}
	if result.Hits == nil {
		return islands, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		islands = append(islands, islandFromDocument(*hit.Document))
	}
	return islands, nil
}
