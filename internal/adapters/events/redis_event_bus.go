package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/providers"
	redisclient "github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/clients/redis"
)

// subscriberBuffer is how many undelivered events a slow subscriber may hold
// before further events are dropped for it
const subscriberBuffer = 64

// RedisEventBus implements the EventBus interface using Redis Pub/Sub.
// One Redis subscription per channel fans out to every local subscriber.
type RedisEventBus struct {
	client *redisclient.Client

	mu       sync.Mutex
	channels map[string]*fanout
	closed   bool
}

type fanout struct {
	pubsub      *redis.PubSub
	subscribers map[chan *entities.CatalogEvent]struct{}
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	return &RedisEventBus{
		client:   client,
		channels: make(map[string]*fanout),
	}
}

// Publish publishes an event to all subscribers
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.CatalogEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Client().Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Debug().Str("channel", channel).Str("event_id", event.ID).Str("type", string(event.Type)).Msg("published catalog event")
	return nil
}

// Subscribe returns a channel of events that is closed when ctx is done,
// the channel is unsubscribed, or the bus is closed
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.CatalogEvent, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, errors.New("event bus closed")
	}

	f, ok := b.channels[channel]
	if !ok {
		pubsub := b.client.Client().Subscribe(context.Background(), channel)
		if _, err := pubsub.Receive(ctx); err != nil {
			b.mu.Unlock()
			_ = pubsub.Close()
			return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
		}
		f = &fanout{pubsub: pubsub, subscribers: make(map[chan *entities.CatalogEvent]struct{})}
		b.channels[channel] = f
		go b.receive(channel, f)
	}

	eventChan := make(chan *entities.CatalogEvent, subscriberBuffer)
	f.subscribers[eventChan] = struct{}{}
	count := len(f.subscribers)
	b.mu.Unlock()

	log.Info().Str("channel", channel).Int("subscribers", count).Msg("subscribed to channel")

	go func() {
		<-ctx.Done()
		b.removeSubscriber(channel, eventChan)
	}()

	return eventChan, nil
}

func (b *RedisEventBus) receive(channel string, f *fanout) {
	for msg := range f.pubsub.Channel() {
		var event entities.CatalogEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Warn().Str("channel", channel).Err(err).Msg("dropping malformed event")
			continue
		}

		b.mu.Lock()
		for subscriber := range f.subscribers {
			select {
			case subscriber <- &event:
			default:
				log.Warn().Str("channel", channel).Str("event_id", event.ID).Msg("subscriber full, event dropped")
			}
		}
		b.mu.Unlock()
	}
}

func (b *RedisEventBus) removeSubscriber(channel string, eventChan chan *entities.CatalogEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, ok := b.channels[channel]
	if !ok {
		return
	}
	if _, ok := f.subscribers[eventChan]; !ok {
		return
	}
	delete(f.subscribers, eventChan)
	close(eventChan)

	if len(f.subscribers) == 0 {
		b.closeChannelLocked(channel, f)
	}
}

// closeChannelLocked must be called with b.mu held
func (b *RedisEventBus) closeChannelLocked(channel string, f *fanout) error {
	for subscriber := range f.subscribers {
		close(subscriber)
	}
	f.subscribers = nil
	delete(b.channels, channel)

	if err := f.pubsub.Close(); err != nil {
		return fmt.Errorf("failed to close subscription %s: %w", channel, err)
	}
	log.Info().Str("channel", channel).Msg("closed subscription")
	return nil
}

// Unsubscribe drops every local subscriber of a channel
func (b *RedisEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, ok := b.channels[channel]
	if !ok {
		return nil
	}
	return b.closeChannelLocked(channel, f)
}

// Close closes the event bus and all subscriptions
func (b *RedisEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	var errs []error
	for channel, f := range b.channels {
		if err := b.closeChannelLocked(channel, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
