package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/providers"
)

// CacheInvalidationService drops cached catalog reads when other instances
// report writes on the event bus
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	done     sync.WaitGroup
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelCatalogUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to catalog updates: %w", err)
	}

	s.done.Add(1)
	go s.processEvents(eventChan)
	log.Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops the service and waits for the event loop to exit
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	s.done.Wait()
	log.Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.CatalogEvent) {
	defer s.done.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event != nil {
				s.handleEvent(event)
			}
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.CatalogEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger := log.With().Str("event_id", event.ID).Str("type", string(event.Type)).Int64("entity_id", event.EntityID).Logger()

	var err error
	switch event.Type {
	case entities.CatalogEventProviderCreated, entities.CatalogEventProviderVerified:
		err = s.cache.DeletePattern(ctx, providers.CachePatternProviders)
	case entities.CatalogEventReviewCreated:
		err = s.cache.Delete(ctx, providers.CacheKeyReviews(event.EntityID))
	default:
		logger.Debug().Msg("ignoring catalog event")
		return
	}

	if err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate cache")
		return
	}
	logger.Debug().Msg("invalidated cache")
}

// InvalidateCatalog drops every cached catalog key. Used after reseeding.
func (s *CacheInvalidationService) InvalidateCatalog(ctx context.Context) error {
	if err := s.cache.DeletePattern(ctx, "catalog:*"); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	log.Info().Msg("invalidated catalog cache")
	return nil
}
