// Command indexer loads every island into the Typesense destinations
// collection, once or on a fixed interval.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/chandrabs25/Andaman-travel-website/internal/adapters/database"
	"github.com/chandrabs25/Andaman-travel-website/internal/adapters/search"
	"github.com/chandrabs25/Andaman-travel-website/internal/application/services"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/clients/typesense"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/observability"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/recordstore"
	"github.com/chandrabs25/Andaman-travel-website/pkg/config"
)

func main() {
	intervalFlag := pflag.String("interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("indexer", cfg.Server.Env)

	interval, err := parseInterval(*intervalFlag, os.Getenv("REINDEX_INTERVAL"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid interval")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, cfg); err != nil {
			log.Error().Err(err).Msg("reindex failed")
		}
		if interval <= 0 {
			return
		}

		log.Info().Dur("next_in", interval).Msg("reindex complete")
		select {
		case <-ctx.Done():
			log.Info().Msg("indexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

// parseInterval prefers the flag over the environment. An empty value means
// run once.
func parseInterval(flagValue, envValue string) (time.Duration, error) {
	raw := strings.TrimSpace(flagValue)
	if raw == "" {
		raw = strings.TrimSpace(envValue)
	}
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("interval must be greater than zero, got %s", d)
	}
	return d, nil
}

func indexOnce(ctx context.Context, cfg *config.Config) error {
	store, err := recordstore.Open(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	tsClient, err := typesense.NewClient(ctx, &cfg.Typesense)
	if err != nil {
		return err
	}
	adapter := search.NewTypesenseAdapter(tsClient)
	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	das := database.NewService(store)
	n, err := services.NewCatalogService(das, das, das, adapter).IndexDestinations(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("count", n).Msg("destinations indexed")
	return nil
}
