package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/providers"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/observability"
)

// publishCatalogEvent announces a write. A nil bus or a publish failure is
// logged and otherwise ignored; the write has already happened.
func publishCatalogEvent(ctx context.Context, bus providers.EventBus, eventType entities.CatalogEventType, entityID int64) {
	if bus == nil {
		return
	}

	event := &entities.CatalogEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
	if err := bus.Publish(ctx, providers.EventChannelCatalogUpdates, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("type", string(eventType)).
			Int64("entity_id", entityID).
			Msg("failed to publish catalog event")
	}
}
