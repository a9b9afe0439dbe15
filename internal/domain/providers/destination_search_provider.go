package providers

import (
	"context"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
)

// DestinationSearchProvider is an external full-text index over islands
type DestinationSearchProvider interface {
	Index(ctx context.Context, island *entities.Island) error
	Search(ctx context.Context, query string, limit int) ([]*entities.Island, error)
}
