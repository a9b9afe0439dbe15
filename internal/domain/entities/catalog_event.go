package entities

import "time"

// CatalogEventType names a change that can stale cached reads
type CatalogEventType string

const (
	CatalogEventProviderCreated  CatalogEventType = "provider.created"
	CatalogEventProviderVerified CatalogEventType = "provider.verified"
	CatalogEventReviewCreated    CatalogEventType = "review.created"
)

// CatalogEvent is published on the event bus after a successful write.
// EntityID is the provider id for provider events and the service id for
// review events.
type CatalogEvent struct {
	ID        string           `json:"id"`
	Type      CatalogEventType `json:"type"`
	EntityID  int64            `json:"entity_id"`
	Timestamp time.Time        `json:"timestamp"`
}
