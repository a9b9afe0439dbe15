package routes

import (
	"net/http"
	"net/netip"
	"time"

	"github.com/chandrabs25/Andaman-travel-website/internal/api/handlers"
	"github.com/chandrabs25/Andaman-travel-website/internal/api/middleware"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/providers"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/observability"
)

const (
	authAttemptLimit  = 10
	authAttemptWindow = 15 * time.Minute
)

// Handlers groups the request handlers the router mounts.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Catalog *handlers.CatalogHandler
	Booking *handlers.BookingHandler
	Review  *handlers.ReviewHandler
	Ferry   *handlers.FerryHandler
	Vendor  *handlers.VendorHandler
}

// Options carries the cross-cutting dependencies of the middleware chain.
type Options struct {
	Tokens middleware.TokenVerifier
	// Users resolves token subjects; nil trusts the verified claims.
	Users          middleware.UserLookup
	AllowedOrigins []string
	// Cache backs the auth rate limiter; nil keeps counters in memory.
	Cache providers.CacheProvider
	// TrustedProxies may name the client through X-Forwarded-For.
	TrustedProxies []netip.Prefix
	Metrics        *observability.Metrics
}

// Router holds all route handlers
type Router struct {
	mux      *http.ServeMux
	handlers Handlers
	opts     Options
	limiter  *middleware.RateLimiter
}

// NewRouter creates a new router
func NewRouter(h Handlers, opts Options) *Router {
	return &Router{
		mux:      http.NewServeMux(),
		handlers: h,
		opts:     opts,
		limiter: middleware.NewRateLimiter("ratelimit:auth", authAttemptLimit, authAttemptWindow, opts.Cache,
			middleware.WithTrustedProxies(opts.TrustedProxies)),
	}
}

func (r *Router) handle(pattern string, h http.HandlerFunc, wrap ...func(http.Handler) http.Handler) {
	var handler http.Handler = h
	for i := len(wrap) - 1; i >= 0; i-- {
		handler = wrap[i](handler)
	}
	r.mux.Handle(pattern, middleware.Routed(handler))
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	h := r.handlers
	authed := middleware.RequireAuth
	admin := middleware.RequireAdmin

	r.handle("GET /health", handlers.Health)

	// Auth endpoints
	r.handle("POST /api/auth/register", h.Auth.Register, r.limiter.Middleware)
	r.handle("POST /api/auth/login", h.Auth.Login, r.limiter.Middleware)

	// Catalog endpoints
	r.handle("GET /api/destinations", h.Catalog.ListDestinations)
	r.handle("GET /api/destinations/{id}", h.Catalog.GetDestination)
	r.handle("GET /api/packages", h.Catalog.ListPackages)
	r.handle("GET /api/packages/{id}", h.Catalog.GetPackage)
	r.handle("GET /api/activities", h.Catalog.Activities)

	// Review endpoints
	r.handle("GET /api/services/{id}/reviews", h.Review.ListReviews)
	r.handle("POST /api/services/{id}/reviews", h.Review.CreateReview, authed)

	// Ferry endpoints
	r.handle("GET /api/ferries/schedules", h.Ferry.GetSchedules)

	// Booking endpoints
	r.handle("GET /api/bookings", h.Booking.ListBookings, authed)
	r.handle("POST /api/bookings", h.Booking.CreateBooking, authed)
	r.handle("GET /api/bookings/{id}", h.Booking.GetBooking, authed)

	// Vendor endpoints
	r.handle("GET /api/vendors", h.Vendor.ListVendors)
	r.handle("POST /api/vendors", h.Vendor.RegisterVendor, authed)
	r.handle("GET /api/vendors/me", h.Vendor.Dashboard, authed)
	r.handle("POST /api/vendors/{id}/verify", h.Vendor.VerifyVendor, admin)

	// Catalog management, booking changes and payments have no backing
	// operation yet
	for _, pattern := range []string{
		"POST /api/destinations",
		"PUT /api/destinations/{id}",
		"DELETE /api/destinations/{id}",
		"POST /api/packages",
		"PUT /api/packages/{id}",
		"DELETE /api/packages/{id}",
		"PUT /api/bookings/{id}",
		"DELETE /api/bookings/{id}",
		"GET /api/payment/order",
		"POST /api/payment/order",
		"GET /api/payment/verify",
		"POST /api/payment/verify",
	} {
		r.handle(pattern, handlers.NotImplemented)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS stays outermost so rejected and failed requests still carry
	// its headers.
	var handler http.Handler = r.mux
	handler = middleware.Authenticate(r.opts.Tokens, r.opts.Users)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.Recovery(handler)
	handler = middleware.ObservabilityMiddleware(r.opts.Metrics)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORS(r.opts.AllowedOrigins)(handler)

	return handler
}
