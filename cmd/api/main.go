package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chandrabs25/Andaman-travel-website/internal/adapters/cache"
	"github.com/chandrabs25/Andaman-travel-website/internal/adapters/database"
	"github.com/chandrabs25/Andaman-travel-website/internal/adapters/events"
	"github.com/chandrabs25/Andaman-travel-website/internal/adapters/search"
	"github.com/chandrabs25/Andaman-travel-website/internal/api/handlers"
	"github.com/chandrabs25/Andaman-travel-website/internal/api/middleware"
	"github.com/chandrabs25/Andaman-travel-website/internal/api/routes"
	"github.com/chandrabs25/Andaman-travel-website/internal/application/services"
	"github.com/chandrabs25/Andaman-travel-website/internal/auth"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/providers"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/repositories"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/clients/redis"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/clients/typesense"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/observability"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/recordstore"
	"github.com/chandrabs25/Andaman-travel-website/pkg/config"
)

// dataAccess is satisfied by both database.Service and database.CachedService.
type dataAccess interface {
	repositories.UserRepository
	repositories.IslandRepository
	repositories.ServiceRepository
	repositories.PackageRepository
	repositories.BookingRepository
	repositories.ReviewRepository
	repositories.FerryRepository
	repositories.ProviderRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	store, err := recordstore.Open(ctx, &cfg.Database, recordstore.WithMetrics(metrics))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open record store")
	}
	defer store.Close()
	log.Info().Str("dialect", string(store.Dialect())).Msg("record store ready")

	base := database.NewService(store)
	var data dataAccess = base

	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			// The API works without caching.
			log.Warn().Err(err).Msg("redis unavailable, running without cache")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			eventBus = events.NewRedisEventBus(redisClient)
			data = database.NewCachedService(base, cacheProvider, metrics)
			log.Info().Msg("catalog reads wrapped with cache layer")
		}
	}

	var searchProvider providers.DestinationSearchProvider
	if cfg.Typesense.Enabled {
		tsClient, err := typesense.NewClient(ctx, &cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("typesense unavailable, destination search uses SQL")
		} else {
			adapter := search.NewTypesenseAdapter(tsClient)
			if err := adapter.InitSchema(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to init typesense schema")
			} else {
				searchProvider = adapter
			}
		}
	}

	authService := services.NewAuthService(data, metrics)
	catalogService := services.NewCatalogService(data, data, data, searchProvider)
	bookingService := services.NewBookingService(data, data)
	reviewService := services.NewReviewService(data, data, eventBus)
	ferryService := services.NewFerryService(data)
	vendorService := services.NewVendorService(data, data, eventBus)

	if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap admin account")
	}

	if searchProvider != nil {
		n, err := catalogService.IndexDestinations(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("failed to index destinations")
		} else {
			log.Info().Int("count", n).Msg("destinations indexed")
		}
	}

	var invalidation *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		invalidation = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := invalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("failed to start cache invalidation")
			invalidation = nil
		}
	}
	if cacheProvider != nil {
		warming := services.NewCacheWarmingService(data, data, data)
		go func() {
			if err := warming.WarmCache(ctx); err != nil {
				log.Warn().Err(err).Msg("cache warming failed")
			}
		}()
	}

	trustedProxies, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid TRUSTED_PROXIES")
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, auth.WithTTL(cfg.Auth.TokenTTL))
	log.Info().Str("public_key", auth.EncodePublicKey(tokens.PublicKey())).Msg("token verification key")

	router := routes.NewRouter(routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService, tokens),
		Catalog: handlers.NewCatalogHandler(catalogService),
		Booking: handlers.NewBookingHandler(bookingService),
		Review:  handlers.NewReviewHandler(reviewService),
		Ferry:   handlers.NewFerryHandler(ferryService),
		Vendor:  handlers.NewVendorHandler(vendorService),
	}, routes.Options{
		Tokens:         tokens,
		Users:          data,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Cache:          cacheProvider,
		TrustedProxies: trustedProxies,
		Metrics:        metrics,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}
	if invalidation != nil {
		invalidation.Stop()
	}

	log.Info().Msg("server stopped")
}
